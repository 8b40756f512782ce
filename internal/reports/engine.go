package reports

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ComputeTrueRate converts extracted fee items into a single estimated
// percent-of-invoice figure with an auditable line-by-line breakdown.
// Deterministic given the same fees and assumptions: each component is
// rounded to 3 decimals before summing and the total is the exact sum of
// the rounded components, so the breakdown always reconciles to the
// total within 0.001.
func ComputeTrueRate(fees []FeeItem, assumptions Assumptions) (float64, []RateBreakdownItem, []string) {
	var (
		breakdown []RateBreakdownItem
		warnings  []string
		total     float64
	)

	for _, fee := range fees {
		name := fallbackName(fee.Name, "unnamed fee")

		if required, conditional := payoutMethodFor(fee); conditional && required != assumptions.PayoutMethod {
			warnings = append(warnings,
				fmt.Sprintf("%s applies only to %s payouts and is excluded from the estimate", name, required))
			continue
		}

		var (
			pct         float64
			explanation string
			ok          bool
		)
		switch {
		case len(fee.Tiers) > 0:
			pct, explanation, ok = tieredPercent(fee, assumptions, &warnings)
		case fee.Amount.Percent != nil:
			pct = *fee.Amount.Percent
			explanation = fmt.Sprintf("%.3g%% of invoice value as stated", pct)
			ok = true
		case fee.Amount.FlatUSD != nil:
			if isMonthly(fee) {
				perInvoice := *fee.Amount.FlatUSD / float64(assumptions.InvoicesPerMonth)
				pct = perInvoice / assumptions.InvoiceAmount * 100
				explanation = fmt.Sprintf("$%.2f/month over %d invoices of $%.2f",
					*fee.Amount.FlatUSD, assumptions.InvoicesPerMonth, assumptions.InvoiceAmount)
			} else {
				pct = *fee.Amount.FlatUSD / assumptions.InvoiceAmount * 100
				explanation = fmt.Sprintf("$%.2f flat on a $%.2f invoice",
					*fee.Amount.FlatUSD, assumptions.InvoiceAmount)
			}
			ok = true
		}

		if !ok {
			warnings = append(warnings,
				fmt.Sprintf("%s has no extractable amount; estimate is a lower bound", name))
			continue
		}

		pct = round3(pct)
		breakdown = append(breakdown, RateBreakdownItem{
			Component:        name,
			PercentOfInvoice: pct,
			Explanation:      explanation,
		})
		total += pct
	}

	// total is the exact sum of rounded components by construction; the
	// reconciliation check guards future edits to the loop above.
	var check float64
	for _, item := range breakdown {
		check += item.PercentOfInvoice
	}
	if math.Abs(check-total) > 0.001 {
		warnings = append(warnings, "breakdown does not reconcile with the total; estimate may be inaccurate")
		total = check
	}

	return total, breakdown, warnings
}

// tieredPercent prorates a time-dependent fee against avg_days_to_pay.
// Between two thresholds the rate is linearly interpolated weighted by
// the fraction of the span past the lower threshold. When a neighboring
// tier has no usable rate the nearest lower tier applies and a warning
// names the fee.
func tieredPercent(fee FeeItem, assumptions Assumptions, warnings *[]string) (float64, string, bool) {
	name := fallbackName(fee.Name, "unnamed fee")
	tiers := make([]FeeTier, len(fee.Tiers))
	copy(tiers, fee.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].AfterDays < tiers[j].AfterDays })

	days := float64(assumptions.AvgDaysToPay)
	lower := -1
	for i, t := range tiers {
		if float64(t.AfterDays) <= days {
			lower = i
		}
	}

	if lower < 0 {
		// not yet past the first threshold; the base amount applies
		if fee.Amount.Percent != nil {
			return *fee.Amount.Percent, fmt.Sprintf("base rate applies before day %d", tiers[0].AfterDays), true
		}
		if fee.Amount.FlatUSD != nil {
			return *fee.Amount.FlatUSD / assumptions.InvoiceAmount * 100,
				fmt.Sprintf("base amount applies before day %d", tiers[0].AfterDays), true
		}
		*warnings = append(*warnings,
			fmt.Sprintf("%s: no base amount before day %d; using the first tier", name, tiers[0].AfterDays))
		if pct, ok := tierRate(tiers[0], assumptions); ok {
			return pct, fmt.Sprintf("first tier (after day %d) rate", tiers[0].AfterDays), true
		}
		return 0, "", false
	}

	lowerPct, lowerOK := tierRate(tiers[lower], assumptions)
	if !lowerOK {
		*warnings = append(*warnings, fmt.Sprintf("%s: tier after day %d has no usable rate", name, tiers[lower].AfterDays))
		return 0, "", false
	}

	if lower == len(tiers)-1 {
		return lowerPct, fmt.Sprintf("top tier (after day %d) rate", tiers[lower].AfterDays), true
	}

	upper := tiers[lower+1]
	upperPct, upperOK := tierRate(upper, assumptions)
	if !upperOK {
		*warnings = append(*warnings,
			fmt.Sprintf("%s: cannot interpolate past day %d; using the nearest lower tier", name, tiers[lower].AfterDays))
		return lowerPct, fmt.Sprintf("tier after day %d rate (interpolation unavailable)", tiers[lower].AfterDays), true
	}

	span := float64(upper.AfterDays - tiers[lower].AfterDays)
	frac := (days - float64(tiers[lower].AfterDays)) / span
	pct := lowerPct + frac*(upperPct-lowerPct)
	return pct, fmt.Sprintf("prorated between day-%d and day-%d tiers at %d days outstanding",
		tiers[lower].AfterDays, upper.AfterDays, assumptions.AvgDaysToPay), true
}

// tierRate resolves one tier to a percent of invoice value.
func tierRate(t FeeTier, assumptions Assumptions) (float64, bool) {
	if t.Percent != nil {
		return *t.Percent, true
	}
	if t.FlatUSD != nil {
		return *t.FlatUSD / assumptions.InvoiceAmount * 100, true
	}
	return 0, false
}

// payoutMethodFor reports whether a conditional fee is tied to a specific
// payout method, and which one.
func payoutMethodFor(fee FeeItem) (string, bool) {
	if fee.Kind != FeeConditional {
		return "", false
	}
	text := strings.ToLower(fee.Name + " " + fee.Trigger)
	switch {
	case strings.Contains(text, "wire"):
		return PayoutWire, true
	case strings.Contains(text, "fuel card") || strings.Contains(text, "fuelcard") || strings.Contains(text, "fuel-card"):
		return PayoutFuelCard, true
	case achWord.MatchString(text):
		return PayoutACH, true
	}
	return "", false
}

// matches "ach" as a whole word so "each" and "attach" do not trip it
var achWord = regexp.MustCompile(`\bach\b`)

func isMonthly(fee FeeItem) bool {
	text := strings.ToLower(fee.Name + " " + fee.Trigger)
	return strings.Contains(text, "month")
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
