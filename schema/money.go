package schema

import (
	"cmp"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// NewMoney builds a money payload from an ISO-4217 code and an amount.
func NewMoney(code string, amount decimal.Decimal) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("currency %q: %w", code, err)
	}
	return Money{Currency: unit, Amount: amount}, nil
}

// moneyScale returns the number of fraction digits shown for m: the
// currency's standard scale, or more when the amount carries them.
func moneyScale(m Money) int32 {
	scale, _ := currency.Standard.Rounding(m.Currency)
	s := int32(scale)
	if exp := m.Amount.Exponent(); -exp > s {
		s = -exp
	}
	return s
}

// moneyHandler refuses text parsing: a currency-less amount cannot be
// turned into money without guessing.
func moneyHandler() handler {
	return handler{
		alignRight:   true,
		maxPrecision: Unbounded,
		accepts:      is[Money],
		format: func(p Payload, _ int) string {
			m := p.(Money)
			return m.Currency.String() + " " + m.Amount.StringFixed(moneyScale(m))
		},
		compare: func(a, b Payload) int {
			x, y := a.(Money), b.(Money)
			if c := cmp.Compare(x.Currency.String(), y.Currency.String()); c != 0 {
				return c
			}
			return x.Amount.Cmp(y.Amount)
		},
	}
}
