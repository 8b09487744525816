// Package money implements the VND amount conventions used across the
// application: every persisted or displayed amount is rounded to the nearest
// 1,000 đồng, and line items are rounded individually before summing.
package money

import (
	"math"
	"strconv"
)

// Round rounds an amount to the nearest 1,000 VND.
// NaN and infinite inputs are treated as 0 so they never propagate into totals.
func Round(amount float64) int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return int64(math.Round(amount/1000)) * 1000
}

// Format rounds an amount and renders it with dot thousand separators and the
// đồng suffix, e.g. 1234567 -> "1.235.000 đ".
func Format(amount int64) string {
	rounded := Round(float64(amount))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	s := string(out)
	if negative {
		s = "-" + s
	}
	return s + " đ"
}

// ItemTotal computes the discounted total for a single line item, rounded to
// the nearest 1,000 VND. A non-positive price or quantity yields 0. The
// discount is a percentage; range validation is the caller's responsibility.
func ItemTotal(price int64, quantity int, discount float64) int64 {
	if price <= 0 || quantity <= 0 {
		return 0
	}
	raw := float64(price) * float64(quantity) * (1 - discount/100)
	return Round(raw)
}

// Item is the minimal shape InvoiceTotal needs from a line item.
type Item struct {
	Price    int64
	Quantity int
	Discount float64
}

// InvoiceTotal sums the rounded per-item totals. Rounding happens once, per
// item; the sum itself is never re-rounded.
func InvoiceTotal(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += ItemTotal(item.Price, item.Quantity, item.Discount)
	}
	return total
}
