package money

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"exact thousand", 100000, 100000},
		{"rounds up", 99999, 100000},
		{"rounds down", 100499, 100000},
		{"half rounds away from zero", 500, 1000},
		{"below half rounds to zero", 499, 0},
		{"negative", -1500, -2000},
		{"zero", 0, 0},
		{"nan treated as zero", math.NaN(), 0},
		{"positive infinity treated as zero", math.Inf(1), 0},
		{"negative infinity treated as zero", math.Inf(-1), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Round(tc.amount); got != tc.want {
				t.Fatalf("Round(%v) = %d, want %d", tc.amount, got, tc.want)
			}
		})
	}
}

func TestRoundIsIdempotent(t *testing.T) {
	for _, amount := range []float64{0, 999, 1000, 123456, 999999999} {
		once := Round(amount)
		twice := Round(float64(once))
		if once != twice {
			t.Fatalf("rounding %v twice changed the value: %d != %d", amount, once, twice)
		}
	}
}

func TestItemTotal(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		quantity int
		discount float64
		want     int64
	}{
		{"no discount", 100000, 2, 0, 200000},
		{"ten percent discount", 100000, 2, 10, 180000},
		{"discount result is rounded", 99999, 1, 0, 100000},
		{"full discount", 100000, 3, 100, 0},
		{"zero quantity", 100000, 0, 0, 0},
		{"negative quantity", 100000, -1, 0, 0},
		{"zero price", 0, 5, 0, 0},
		{"negative price", -100000, 5, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ItemTotal(tc.price, tc.quantity, tc.discount); got != tc.want {
				t.Fatalf("ItemTotal(%d, %d, %v) = %d, want %d", tc.price, tc.quantity, tc.discount, got, tc.want)
			}
		})
	}
}

func TestInvoiceTotal(t *testing.T) {
	items := []Item{
		{Price: 100000, Quantity: 2, Discount: 10}, // 180000
		{Price: 50000, Quantity: 1, Discount: 0},   // 50000
	}
	if got := InvoiceTotal(items); got != 230000 {
		t.Fatalf("InvoiceTotal = %d, want 230000", got)
	}
}

func TestInvoiceTotalEmpty(t *testing.T) {
	if got := InvoiceTotal(nil); got != 0 {
		t.Fatalf("InvoiceTotal(nil) = %d, want 0", got)
	}
}

func TestInvoiceTotalRoundsPerItem(t *testing.T) {
	// 1500 rounds to 2000 per item. Summing first would give 3000.
	items := []Item{
		{Price: 1500, Quantity: 1},
		{Price: 1500, Quantity: 1},
	}
	if got := InvoiceTotal(items); got != 4000 {
		t.Fatalf("InvoiceTotal = %d, want 4000 (items rounded individually)", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0 đ"},
		{1000, "1.000 đ"},
		{1234567, "1.235.000 đ"},
		{-25000, "-25.000 đ"},
	}

	for _, tc := range cases {
		if got := Format(tc.amount); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
