// Package money holds the decimal helpers shared by cart pricing code.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits displayed for amounts.
const Places = 2

// Round rounds an amount to display precision, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Format renders an amount with exactly two fractional digits, e.g. "3.02".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(Places)
}

// Extend multiplies a unit price by a quantity without rounding.
func Extend(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// Parse reads a decimal amount from user input and rejects negatives.
func Parse(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", raw)
	}
	return amount, nil
}
