package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal string from an API request. Amounts are
// always positive magnitudes; the sign of the effect is implied by the
// transaction type.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return amount, nil
}
