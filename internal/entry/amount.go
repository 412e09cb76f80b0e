package entry

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts free-text input into a signed amount.
//
// A decimal comma is accepted in place of the decimal point ("12,50").
// Anything that is not a number, or is exactly zero, is rejected with
// ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.Replace(raw, ",", ".", 1))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsZero() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
