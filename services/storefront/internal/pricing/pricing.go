// Package pricing computes cart totals: the subtotal, the t-shirt quantity
// discount and the percentage discount of an applied code.
//
// Amounts are kept as exact decimals and never rounded here. Rounding to
// cents happens only when a value is formatted for display.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

// tier is a step in the t-shirt quantity discount table.
type tier struct {
	min    int
	amount decimal.Decimal
}

// tiers is checked top-down; the first tier whose minimum is met wins. The
// amounts are fixed values, not a per-shirt formula.
var tiers = []tier{
	{min: 8, amount: decimal.RequireFromString("19.92")},
	{min: 6, amount: decimal.RequireFromString("14.94")},
	{min: 4, amount: decimal.RequireFromString("9.96")},
	{min: 2, amount: decimal.RequireFromString("4.98")},
}

var hundred = decimal.NewFromInt(100)

// Subtotal is the sum of price times quantity over all lines.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// IsTShirt reports whether a line counts towards the t-shirt discount. The
// product name or category must contain "t-shirt" or "tshirt", ignoring case.
func IsTShirt(line domain.CartLine) bool {
	return mentionsTShirt(line.Name) || mentionsTShirt(line.Category)
}

func mentionsTShirt(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "t-shirt") || strings.Contains(s, "tshirt")
}

// TShirtCount is the number of t-shirt units in lines.
func TShirtCount(lines []domain.CartLine) int {
	var n int
	for _, l := range lines {
		if IsTShirt(l) {
			n += l.Quantity
		}
	}
	return n
}

// TieredDiscount returns the fixed discount for count t-shirts.
func TieredDiscount(count int) decimal.Decimal {
	for _, t := range tiers {
		if count >= t.min {
			return t.amount
		}
	}
	return decimal.Zero
}

// CodeDiscount applies the code percentage to what remains after the tiered
// discount, capped at the code's maximum. A nil code yields zero.
func CodeDiscount(subtotal, tiered decimal.Decimal, code *domain.DiscountCode) decimal.Decimal {
	if code == nil {
		return decimal.Zero
	}
	raw := subtotal.Sub(tiered).
		Mul(decimal.NewFromInt(int64(code.Percentage))).
		Div(hundred)
	return decimal.Min(raw, code.MaxDiscount)
}

// Calculate prices the cart. The total is not clamped at zero.
func Calculate(cart domain.Cart) domain.Summary {
	subtotal := Subtotal(cart.Lines)
	shirts := TShirtCount(cart.Lines)
	tiered := TieredDiscount(shirts)
	codeDiscount := CodeDiscount(subtotal, tiered, cart.Discount)

	s := domain.Summary{
		Subtotal:       subtotal,
		TieredDiscount: tiered,
		CodeDiscount:   codeDiscount,
		Total:          subtotal.Sub(tiered).Sub(codeDiscount),
		ItemCount:      cart.Count(),
		TShirtCount:    shirts,
	}
	if cart.Discount != nil {
		c := *cart.Discount
		s.Code = &c
	}
	return s
}

// FormatMoney renders an amount as dollars with two decimals, e.g. "$19.99".
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
