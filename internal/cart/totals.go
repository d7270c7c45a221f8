package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cartview/pkg/money"
)

// LineTotal is price×quantity rounded to two decimals.
func LineTotal(entry Entry) decimal.Decimal {
	return money.Round(money.Extend(entry.Price, entry.Quantity))
}

// CartTotal sums the exact line amounts and rounds once.
func CartTotal(state State) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range state.entries {
		total = total.Add(money.Extend(entry.Price, entry.Quantity))
	}
	return money.Round(total)
}

// ItemCount is the number of units across all entries.
func ItemCount(state State) int {
	count := 0
	for _, entry := range state.entries {
		count += entry.Quantity
	}
	return count
}
