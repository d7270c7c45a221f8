package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", raw, err)
	}
	return d
}

func TestLineTotalRoundsToCents(t *testing.T) {
	t.Parallel()

	apple := Entry{Name: "Apple", Price: dec(t, "1.005"), Quantity: 3}
	if got := LineTotal(apple).StringFixed(2); got != "3.02" {
		t.Fatalf("expected 3.02, got %s", got)
	}

	plant := Entry{Name: "Snake Plant", Price: dec(t, "15"), Quantity: 2}
	if got := LineTotal(plant).StringFixed(2); got != "30.00" {
		t.Fatalf("expected 30.00, got %s", got)
	}
}

func TestCartTotalSumsBeforeRounding(t *testing.T) {
	t.Parallel()

	state := NewState(
		Entry{Name: "Apple", Price: dec(t, "1.005"), Quantity: 3},
		Entry{Name: "Pear", Price: dec(t, "0.333"), Quantity: 3},
		Entry{Name: "Fern", Price: dec(t, "12.50"), Quantity: 1},
	)

	// 3.015 + 0.999 + 12.50 = 16.514
	if got := CartTotal(state).StringFixed(2); got != "16.51" {
		t.Fatalf("expected 16.51, got %s", got)
	}
	if got := ItemCount(state); got != 7 {
		t.Fatalf("expected 7 units, got %d", got)
	}
}

func TestCartTotalMatchesSumOfExactLines(t *testing.T) {
	t.Parallel()

	cases := [][]Entry{
		{{Name: "a", Price: dec(t, "0.10"), Quantity: 3}},
		{{Name: "a", Price: dec(t, "19.99"), Quantity: 2}, {Name: "b", Price: dec(t, "0.01"), Quantity: 99}},
		{{Name: "a", Price: dec(t, "2.675"), Quantity: 1}, {Name: "b", Price: dec(t, "0"), Quantity: 4}},
	}
	for _, entries := range cases {
		want := decimal.Zero
		for _, entry := range entries {
			want = want.Add(entry.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
		}
		got := CartTotal(NewState(entries...))
		if !got.Equal(want.Round(2)) {
			t.Fatalf("entries %+v: expected %s, got %s", entries, want.Round(2), got)
		}
	}
}

func TestEmptyCartTotals(t *testing.T) {
	t.Parallel()

	var empty State
	if !CartTotal(empty).IsZero() {
		t.Fatalf("expected zero total for empty cart")
	}
	if ItemCount(empty) != 0 {
		t.Fatalf("expected zero units for empty cart")
	}
}
