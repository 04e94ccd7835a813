// Package currency converts amounts between currencies through a table of
// rates anchored to a single base currency (USD in practice). A rate expresses
// 1 unit of base = rate units of target.
package currency

import "strings"

// DefaultBase is the anchor currency for all populated rates.
const DefaultBase = "USD"

// Table holds rates from one base currency to a set of targets.
type Table struct {
	base  string
	rates map[string]float64
}

// NewTable creates an empty rate table anchored at the given base currency.
func NewTable(base string) *Table {
	if base == "" {
		base = DefaultBase
	}
	return &Table{
		base:  strings.ToUpper(base),
		rates: make(map[string]float64),
	}
}

// Base returns the anchor currency code.
func (t *Table) Base() string { return t.base }

// SetRate records the rate from the base to the target currency. Rates quoted
// against a different base are ignored; cross-pair conversion always goes
// through the anchor.
func (t *Table) SetRate(base, target string, rate float64) {
	if strings.ToUpper(base) != t.base || rate == 0 {
		return
	}
	t.rates[strings.ToUpper(target)] = rate
}

// LookupRate returns the base→code rate and whether it is actually known.
func (t *Table) LookupRate(code string) (float64, bool) {
	code = strings.ToUpper(code)
	if code == t.base {
		return 1.0, true
	}
	rate, ok := t.rates[code]
	return rate, ok
}

// rate returns the base→code rate, defaulting to 1.0 when the currency has no
// entry. The parity fallback mirrors the original behavior: an unknown
// currency is silently treated as equal to the base rather than failing the
// whole aggregation.
func (t *Table) rate(code string) float64 {
	if r, ok := t.LookupRate(code); ok {
		return r
	}
	return 1.0
}

// Convert converts an amount from one currency to another through the base.
// Identity conversions return the amount unchanged.
func (t *Table) Convert(amount float64, from, to string) float64 {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount
	}
	return amount / t.rate(from) * t.rate(to)
}
