package reports

import "testing"

func TestAssumptionsWithDefaults(t *testing.T) {
	got := Assumptions{}.WithDefaults()
	want := Assumptions{
		InvoiceAmount:    DefaultInvoiceAmount,
		AvgDaysToPay:     DefaultAvgDaysToPay,
		InvoicesPerMonth: DefaultInvoicesPerMonth,
		PayoutMethod:     PayoutACH,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// one bad field does not discard the others
	got = Assumptions{InvoiceAmount: -10, AvgDaysToPay: 45, InvoicesPerMonth: 8, PayoutMethod: "cash"}.WithDefaults()
	if got.InvoiceAmount != DefaultInvoiceAmount {
		t.Fatalf("expected non-positive invoice amount defaulted, got %v", got.InvoiceAmount)
	}
	if got.AvgDaysToPay != 45 || got.InvoicesPerMonth != 8 {
		t.Fatalf("expected valid fields preserved, got %+v", got)
	}
	if got.PayoutMethod != PayoutACH {
		t.Fatalf("expected invalid payout method defaulted, got %q", got.PayoutMethod)
	}
}

func TestParseAssumptions(t *testing.T) {
	got := ParseAssumptions(`{"invoice_amount": 2500, "payout_method": "wire"}`)
	if got.InvoiceAmount != 2500 || got.PayoutMethod != PayoutWire {
		t.Fatalf("expected supplied values kept, got %+v", got)
	}
	if got.AvgDaysToPay != DefaultAvgDaysToPay {
		t.Fatalf("expected omitted field defaulted, got %+v", got)
	}

	for _, raw := range []string{"", "   ", "{not json", `"a string"`} {
		got := ParseAssumptions(raw)
		if got != (Assumptions{}.WithDefaults()) {
			t.Fatalf("raw %q: expected pure defaults, got %+v", raw, got)
		}
	}
}
