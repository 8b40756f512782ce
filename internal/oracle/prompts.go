package oracle

import _ "embed"

//go:embed prompts/extract_v1.txt
var promptExtractV1 string

// PromptTemplate returns the instruction text for a prompt version and
// whether the version was recognized. The instruction text and the
// validator in the reports package form one versioned interface: change
// them together.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "extract_v1":
		return promptExtractV1, true
	default:
		return promptExtractV1, false
	}
}
