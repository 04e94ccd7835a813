package currency

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestTable() *Table {
	t := NewTable("USD")
	t.SetRate("USD", "CNY", 7.2)
	t.SetRate("USD", "HKD", 7.8)
	return t
}

func TestConvertIdentity(t *testing.T) {
	table := newTestTable()

	for _, code := range []string{"USD", "CNY", "XYZ"} {
		if got := table.Convert(123.45, code, code); got != 123.45 {
			t.Errorf("identity conversion for %s changed amount: %f", code, got)
		}
	}
}

func TestConvertViaBase(t *testing.T) {
	table := newTestTable()

	// 7.2 CNY -> 1 USD -> 7.8 HKD
	got := table.Convert(7.2, "CNY", "HKD")
	if !approxEqual(got, 7.8) {
		t.Errorf("expected 7.8 HKD, got %f", got)
	}

	// From base directly.
	got = table.Convert(100, "USD", "CNY")
	if !approxEqual(got, 720) {
		t.Errorf("expected 720 CNY, got %f", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	table := newTestTable()

	amount := 1234.56
	there := table.Convert(amount, "CNY", "HKD")
	back := table.Convert(there, "HKD", "CNY")
	if !approxEqual(back, amount) {
		t.Errorf("round trip drifted: %f -> %f -> %f", amount, there, back)
	}
}

func TestConvertMissingRateFallsBackToParity(t *testing.T) {
	table := newTestTable()

	// EUR has no rate, so it is treated as 1:1 with USD.
	got := table.Convert(50, "EUR", "USD")
	if !approxEqual(got, 50) {
		t.Errorf("expected parity fallback 50, got %f", got)
	}

	if _, ok := table.LookupRate("EUR"); ok {
		t.Error("LookupRate should report EUR as unknown")
	}
	if rate, ok := table.LookupRate("USD"); !ok || rate != 1.0 {
		t.Errorf("base currency should always be known at 1.0, got %f %v", rate, ok)
	}
}

func TestSetRateIgnoresForeignBase(t *testing.T) {
	table := NewTable("USD")
	table.SetRate("EUR", "GBP", 0.85)

	if _, ok := table.LookupRate("GBP"); ok {
		t.Error("rates quoted against a non-anchor base must be ignored")
	}
}
