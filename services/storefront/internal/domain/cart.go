package domain

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrLineNotFound is returned when a line ID does not exist in the cart.
var ErrLineNotFound = errors.New("cart line not found")

// CartLine is one add-to-cart action: a snapshot of the product at the time it
// was added, the number of units and one chosen size per unit.
type CartLine struct {
	ID        string          `json:"id"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Sizes     []string        `json:"sizes"`
}

// Key is the composite identity of the line: product id followed by the
// ordered sizes, e.g. "1-S-M". Two lines may share a key.
func (l CartLine) Key() string {
	parts := make([]string, 0, len(l.Sizes)+1)
	parts = append(parts, strconv.Itoa(l.ProductID))
	parts = append(parts, l.Sizes...)
	return strings.Join(parts, "-")
}

// Total is price times quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DiscountCode is a percentage promotion capped at MaxDiscount.
type DiscountCode struct {
	Code        string          `json:"code"`
	Percentage  int             `json:"percentage"`
	MaxDiscount decimal.Decimal `json:"max_discount"`
}

// Cart is the per-session shopping cart. A Cart value is a snapshot: every
// mutating method returns a new Cart and leaves the receiver untouched.
type Cart struct {
	SessionID string        `json:"session_id"`
	Lines     []CartLine    `json:"lines"`
	Discount  *DiscountCode `json:"discount_code,omitempty"`
	Seq       int           `json:"seq"`
	Version   int           `json:"version"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) Cart {
	return Cart{SessionID: sessionID, Lines: []CartLine{}}
}

// clone copies the cart deeply enough that the copy can be changed without
// affecting c.
func (c Cart) clone() Cart {
	out := c
	out.Lines = make([]CartLine, len(c.Lines))
	for i, l := range c.Lines {
		l.Sizes = slices.Clone(l.Sizes)
		out.Lines[i] = l
	}
	if c.Discount != nil {
		d := *c.Discount
		out.Discount = &d
	}
	return out
}

// Add appends line. Lines are never merged, so adding the same product and
// sizes twice yields two lines with distinct IDs.
func (c Cart) Add(line CartLine) Cart {
	out := c.clone()
	out.Seq++
	line.Sizes = slices.Clone(line.Sizes)
	line.ID = line.Key() + "#" + strconv.Itoa(out.Seq)
	out.Lines = append(out.Lines, line)
	return out
}

// Remove deletes exactly the line with the given ID.
func (c Cart) Remove(lineID string) (Cart, error) {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return c, ErrLineNotFound
	}
	out := c.clone()
	out.Lines = slices.Delete(out.Lines, idx, idx+1)
	return out, nil
}

// UpdateQuantity changes the quantity of a line by delta. The result never
// drops below 1 and saturates instead of overflowing; removing a line is
// done with Remove.
func (c Cart) UpdateQuantity(lineID string, delta int) (Cart, error) {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return c, ErrLineNotFound
	}
	out := c.clone()
	q := out.Lines[idx].Quantity
	if delta > 0 && q > math.MaxInt-delta {
		q = math.MaxInt
	} else {
		q += delta
	}
	out.Lines[idx].Quantity = max(1, q)
	return out, nil
}

// Clear removes every line and the discount code.
func (c Cart) Clear() Cart {
	out := c.clone()
	out.Lines = []CartLine{}
	out.Discount = nil
	return out
}

// WithDiscount replaces the active discount code. A nil code removes it.
func (c Cart) WithDiscount(code *DiscountCode) Cart {
	out := c.clone()
	if code == nil {
		out.Discount = nil
		return out
	}
	d := *code
	out.Discount = &d
	return out
}

// Count is the total number of units across all lines.
func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line with the given ID.
func (c Cart) Line(lineID string) (CartLine, bool) {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return CartLine{}, false
	}
	return c.Lines[idx], true
}

func (c Cart) indexOf(lineID string) int {
	return slices.IndexFunc(c.Lines, func(l CartLine) bool { return l.ID == lineID })
}
