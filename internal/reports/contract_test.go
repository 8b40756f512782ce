package reports

import (
	"errors"
	"strings"
	"testing"
)

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"prose wrapper", "Here you go:\n{\"a\":1}\nHope that helps!", `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`},
		{"braces in strings", `{"quote":"fee {per} invoice"}`, `{"quote":"fee {per} invoice"}`},
		{"escaped quote", `{"quote":"he said \"{\" loudly"}`, `{"quote":"he said \"{\" loudly"}`},
		{"no object", "the document could not be read", ""},
		{"unbalanced", `{"a":1`, ""},
	}
	for _, tc := range cases {
		if got := firstJSONObject(tc.in); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseExtractionMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json at all", `{"isContract": tru`} {
		if _, err := ParseExtraction(raw); !errors.Is(err, ErrMalformedExtraction) {
			t.Fatalf("raw %q: expected ErrMalformedExtraction, got %v", raw, err)
		}
	}
}

func TestParseExtractionOutOfDomain(t *testing.T) {
	result, err := ParseExtraction(`{"isContract":false,"reason":"This is a lease agreement"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsContract {
		t.Fatalf("expected isContract=false")
	}
	if result.Reason != "This is a lease agreement" {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
	if len(result.FeeItems) != 0 {
		t.Fatalf("expected no fee items on a negative classification")
	}

	// a missing reason gets a fallback, never empty
	result, err = ParseExtraction(`{"isContract":false}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason == "" {
		t.Fatalf("expected a non-empty fallback reason")
	}
}

func TestParseExtractionCoercesEnums(t *testing.T) {
	raw := `{
		"isContract": true,
		"detectedCompany": {"name": "Apex Capital", "confidence": 1.7},
		"recourseType": "FULL RECOURSE MAYBE",
		"pricingModel": "Percentage",
		"feeItems": [
			{"name": "Base fee", "type": "PERCENT", "amount": {"percent": 3}, "evidence": {"snippet": "3% of face value"}},
			{"name": "Mystery fee", "type": "surcharge", "amount": {}, "evidence": {"snippet": "an additional charge"}}
		]
	}`

	result, err := ParseExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RecourseType != RecourseUnclear {
		t.Fatalf("expected unknown recourse coerced to unclear, got %q", result.RecourseType)
	}
	if result.PricingModel != PricingPercentage {
		t.Fatalf("expected pricing model lowered to percentage, got %q", result.PricingModel)
	}
	if result.DetectedCompany.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %v", result.DetectedCompany.Confidence)
	}
	if result.FeeItems[0].Kind != FeePercent {
		t.Fatalf("expected type lowered to percent, got %q", result.FeeItems[0].Kind)
	}
	if result.FeeItems[1].Kind != FeeUnknown {
		t.Fatalf("expected unrecognized type with no amount coerced to unknown, got %q", result.FeeItems[1].Kind)
	}
}

func TestParseExtractionDropsUngroundedItems(t *testing.T) {
	raw := `{
		"isContract": true,
		"feeItems": [
			{"name": "Grounded fee", "type": "percent", "amount": {"percent": 2}, "evidence": {"snippet": "2% discount fee"}},
			{"name": "Invented fee", "type": "flat", "amount": {"flat_usd": 99}, "evidence": {"snippet": ""}}
		],
		"termAndExit": [
			{"name": "Renewal window", "value": "60 days notice", "evidence": {"snippet": "written notice 60 days prior"}},
			{"name": "Phantom clause", "value": "who knows", "evidence": {}}
		]
	}`

	result, err := ParseExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.FeeItems) != 1 || result.FeeItems[0].Name != "Grounded fee" {
		t.Fatalf("expected only the grounded fee kept, got %v", result.FeeItems)
	}
	if len(result.TermAndExit) != 1 || result.TermAndExit[0].Name != "Renewal window" {
		t.Fatalf("expected only the grounded term kept, got %v", result.TermAndExit)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected one warning per dropped item, got %v", result.Warnings)
	}
	for _, fee := range result.FeeItems {
		if fee.Evidence.Snippet == "" {
			t.Fatalf("kept fee %q has no evidence snippet", fee.Name)
		}
	}
}

func TestParseExtractionSanitizesMarkup(t *testing.T) {
	raw := `{
		"isContract": true,
		"summary": "<script>alert(1)</script>Standard recourse agreement",
		"feeItems": [
			{"name": "<b>Base fee</b>", "type": "percent", "amount": {"percent": 2}, "evidence": {"snippet": "2% <i>discount</i> fee"}}
		]
	}`

	result, err := ParseExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(result.Summary, "<script>") {
		t.Fatalf("expected script stripped from summary, got %q", result.Summary)
	}
	if result.FeeItems[0].Name != "Base fee" {
		t.Fatalf("expected markup stripped from fee name, got %q", result.FeeItems[0].Name)
	}
	if strings.Contains(result.FeeItems[0].Evidence.Snippet, "<i>") {
		t.Fatalf("expected markup stripped from snippet, got %q", result.FeeItems[0].Evidence.Snippet)
	}
}
