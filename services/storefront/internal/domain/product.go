package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are loaded once at startup and never
// change while the service runs.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	Popular   bool            `json:"popular"`
	Sizes     []string        `json:"sizes"`
}

// HasSize reports whether size is one of the sizes the product is offered in.
func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// NewLine snapshots the product into a cart line with one size per unit.
func (p Product) NewLine(sizes []string) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Quantity:  len(sizes),
		Sizes:     slices.Clone(sizes),
	}
}
