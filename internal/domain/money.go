package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// All monetary quantities in the fund are carried with exactly two fractional
// digits. Derived quantities (interest, principal splits, shares) are rounded
// half-up immediately after they are computed; unrounded intermediates are
// never stored or displayed.

// Round2 rounds a monetary amount to two decimal places, half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseAmount parses a monetary amount from its string form.
// Malformed input is a data error surfaced to the caller, never retried.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}

	return Round2(d), nil
}

// ValidateNonNegative rejects negative monetary input for the named field.
func ValidateNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &ValidationError{Field: field, Message: "must not be negative"}
	}

	return nil
}
