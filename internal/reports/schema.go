package reports

import (
	"encoding/json"
	"strings"
)

// Payout methods accepted in assumptions.
const (
	PayoutACH      = "ACH"
	PayoutWire     = "wire"
	PayoutFuelCard = "fuelcard"
)

// Fee kinds on the wire (the "type" field of a fee item).
const (
	FeePercent     = "percent"
	FeeFlat        = "flat"
	FeeConditional = "conditional"
	FeeUnknown     = "unknown"
)

// Recourse types.
const (
	RecourseRecourse    = "recourse"
	RecourseNonRecourse = "non-recourse"
	RecourseMixed       = "mixed"
	RecourseUnclear     = "unclear"
)

// Pricing models.
const (
	PricingPercentage  = "percentage"
	PricingTiered      = "tiered"
	PricingTimeBased   = "time_based"
	PricingPrimeLinked = "prime_linked"
	PricingOther       = "other"
)

// Default assumptions applied whenever the caller omits a field or
// supplies an unparsable value.
const (
	DefaultInvoiceAmount    = 5000.0
	DefaultAvgDaysToPay     = 30
	DefaultInvoicesPerMonth = 20
	DefaultPayoutMethod     = PayoutACH
)

// Assumptions are the user-supplied operating parameters an analysis is
// normalized against. Immutable per request.
type Assumptions struct {
	InvoiceAmount    float64 `json:"invoice_amount"`
	AvgDaysToPay     int     `json:"avg_days_to_pay"`
	InvoicesPerMonth int     `json:"invoices_per_month"`
	PayoutMethod     string  `json:"payout_method"`
}

// WithDefaults fills any missing or out-of-range field with its default.
// Defaulting is per field so one bad value does not discard the rest.
func (a Assumptions) WithDefaults() Assumptions {
	if a.InvoiceAmount <= 0 {
		a.InvoiceAmount = DefaultInvoiceAmount
	}
	if a.AvgDaysToPay <= 0 {
		a.AvgDaysToPay = DefaultAvgDaysToPay
	}
	if a.InvoicesPerMonth <= 0 {
		a.InvoicesPerMonth = DefaultInvoicesPerMonth
	}
	switch a.PayoutMethod {
	case PayoutACH, PayoutWire, PayoutFuelCard:
	default:
		a.PayoutMethod = DefaultPayoutMethod
	}
	return a
}

// ParseAssumptions decodes a caller-supplied assumptions JSON blob and
// applies defaults. An empty or unparsable blob yields pure defaults.
func ParseAssumptions(raw string) Assumptions {
	var a Assumptions
	raw = strings.TrimSpace(raw)
	if raw != "" {
		// best effort; a decode failure falls through to defaults
		_ = json.Unmarshal([]byte(raw), &a)
	}
	return a.WithDefaults()
}

// Evidence grounds an extracted fact in the source document.
type Evidence struct {
	Snippet  string `json:"snippet"`
	Location string `json:"location,omitempty"`
}

// FeeAmount carries one or both representations of a fee's magnitude.
type FeeAmount struct {
	Percent *float64 `json:"percent,omitempty"`
	FlatUSD *float64 `json:"flat_usd,omitempty"`
}

// FeeTier is one rung of a time-dependent fee ladder. The rate or flat
// amount applies once the invoice is outstanding past AfterDays.
type FeeTier struct {
	AfterDays int      `json:"after_days"`
	Percent   *float64 `json:"percent,omitempty"`
	FlatUSD   *float64 `json:"flat_usd,omitempty"`
}

// FeeItem is one extracted contractual charge.
type FeeItem struct {
	Name     string    `json:"name"`
	Kind     string    `json:"type"`
	Amount   FeeAmount `json:"amount"`
	Tiers    []FeeTier `json:"tiers,omitempty"`
	Trigger  string    `json:"trigger,omitempty"`
	Evidence Evidence  `json:"evidence"`
}

// TermAndExit is a non-pricing contractual term such as a renewal window,
// reserve disclosure, or termination penalty.
type TermAndExit struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Evidence Evidence `json:"evidence"`
}

// DetectedCompany is the counterparty the oracle identified.
type DetectedCompany struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// BaseRate is the advertised base discount as extracted.
type BaseRate struct {
	Text    string   `json:"text"`
	Percent *float64 `json:"percent"`
}

// RateBreakdownItem is one contributor to the estimated true rate.
type RateBreakdownItem struct {
	Component        string  `json:"component"`
	PercentOfInvoice float64 `json:"percent_of_invoice"`
	Explanation      string  `json:"explanation"`
}

// AnalysisResult is the aggregate analysis record. Created once by the
// pipeline and immutable afterwards except for the one-time attachment
// of AdvertisedRateText and ShareToken.
type AnalysisResult struct {
	IsContract                 bool                `json:"isContract"`
	Reason                     string              `json:"reason,omitempty"`
	DetectedCompany            *DetectedCompany    `json:"detectedCompany,omitempty"`
	RecourseType               string              `json:"recourseType,omitempty"`
	PricingModel               string              `json:"pricingModel,omitempty"`
	BaseRate                   *BaseRate           `json:"baseRate,omitempty"`
	FeeItems                   []FeeItem           `json:"feeItems,omitempty"`
	TermAndExit                []TermAndExit       `json:"termAndExit,omitempty"`
	AssumptionsUsed            Assumptions         `json:"assumptionsUsed"`
	EstimatedTrueRatePercent   float64             `json:"estimatedTrueRatePercent"`
	EstimatedTrueRateBreakdown []RateBreakdownItem `json:"estimatedTrueRateBreakdown,omitempty"`
	Warnings                   []string            `json:"warnings,omitempty"`
	Summary                    string              `json:"summary,omitempty"`
	AdvertisedRateText         string              `json:"advertisedRateText,omitempty"`
	AnalysisID                 string              `json:"analysisId"`
	ShareToken                 string              `json:"shareToken,omitempty"`

	// DocumentKey locates the archived upload in the object store. Kept
	// out of API payloads.
	DocumentKey string `json:"-"`
}
