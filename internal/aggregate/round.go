// Package aggregate reshapes a labelled snapshot into the tables and series
// the dashboard charts. Every function is a pure transform over its input.
package aggregate

import "github.com/shopspring/decimal"

// RoundUnits rounds to whole currency units, half to even: 45.5 becomes 46
// and 44.5 becomes 44.
func RoundUnits(d decimal.Decimal) int64 {
	return d.RoundBank(0).IntPart()
}

// mean accumulates a running sum and count.
type mean struct {
	sum decimal.Decimal
	n   int64
}

func (m *mean) add(d decimal.Decimal) {
	m.sum = m.sum.Add(d)
	m.n++
}

func (m mean) value() decimal.Decimal {
	if m.n == 0 {
		return decimal.Zero
	}

	return m.sum.Div(decimal.NewFromInt(m.n))
}

func (m mean) rounded() int64 {
	return RoundUnits(m.value())
}
