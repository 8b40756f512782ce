package reports

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var contentPolicy = bluemonday.StrictPolicy()

// firstJSONObject returns the first balanced JSON object inside raw, or
// "" if none exists. Braces inside string literals are skipped so that
// quoted contract text cannot unbalance the scan.
func firstJSONObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}

// ParseExtraction validates a raw oracle response against the output
// contract. It never partially accepts malformed output; a response with
// no parseable JSON object fails with ErrMalformedExtraction. Conforming
// output is coerced into the canonical enums, free text is sanitized,
// and any fee or term item without a quoted evidence snippet is dropped
// with a warning.
func ParseExtraction(raw string) (AnalysisResult, error) {
	obj := firstJSONObject(raw)
	if obj == "" {
		return AnalysisResult{}, fmt.Errorf("no JSON object in oracle output: %w", ErrMalformedExtraction)
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return AnalysisResult{}, fmt.Errorf("oracle output parse: %v: %w", err, ErrMalformedExtraction)
	}

	if !result.IsContract {
		reason := sanitizeText(result.Reason)
		if reason == "" {
			reason = "Document does not appear to be a factoring agreement"
		}
		return AnalysisResult{IsContract: false, Reason: reason}, nil
	}

	result.Reason = ""
	result.RecourseType = coerceEnum(result.RecourseType, RecourseUnclear,
		RecourseRecourse, RecourseNonRecourse, RecourseMixed, RecourseUnclear)
	result.PricingModel = coerceEnum(result.PricingModel, PricingOther,
		PricingPercentage, PricingTiered, PricingTimeBased, PricingPrimeLinked, PricingOther)

	if result.DetectedCompany != nil {
		result.DetectedCompany.Name = sanitizeText(result.DetectedCompany.Name)
		result.DetectedCompany.Confidence = clamp01(result.DetectedCompany.Confidence)
	}
	if result.BaseRate != nil {
		result.BaseRate.Text = sanitizeText(result.BaseRate.Text)
	}
	result.Summary = sanitizeText(result.Summary)
	for i, w := range result.Warnings {
		result.Warnings[i] = sanitizeText(w)
	}

	kept := result.FeeItems[:0]
	for _, fee := range result.FeeItems {
		fee.Name = sanitizeText(fee.Name)
		fee.Trigger = sanitizeText(fee.Trigger)
		fee.Evidence.Snippet = sanitizeText(fee.Evidence.Snippet)
		fee.Evidence.Location = sanitizeText(fee.Evidence.Location)
		fee.Kind = coerceEnum(fee.Kind, FeeUnknown, FeePercent, FeeFlat, FeeConditional, FeeUnknown)
		if fee.Evidence.Snippet == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("dropped fee %q: no supporting quote from the document", fallbackName(fee.Name, "unnamed fee")))
			continue
		}
		if fee.Kind != FeeUnknown && fee.Amount.Percent == nil && fee.Amount.FlatUSD == nil && len(fee.Tiers) == 0 {
			fee.Kind = FeeUnknown
		}
		kept = append(kept, fee)
	}
	result.FeeItems = kept

	keptTerms := result.TermAndExit[:0]
	for _, term := range result.TermAndExit {
		term.Name = sanitizeText(term.Name)
		term.Value = sanitizeText(term.Value)
		term.Evidence.Snippet = sanitizeText(term.Evidence.Snippet)
		term.Evidence.Location = sanitizeText(term.Evidence.Location)
		if term.Evidence.Snippet == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("dropped term %q: no supporting quote from the document", fallbackName(term.Name, "unnamed term")))
			continue
		}
		keptTerms = append(keptTerms, term)
	}
	result.TermAndExit = keptTerms

	return result, nil
}

func coerceEnum(value, fallback string, allowed ...string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return fallback
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sanitizeText(s string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(s))
}

func fallbackName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}
