package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

// ErrInvalidDiscountCode is returned when a code is not in the table.
var ErrInvalidDiscountCode = errors.New("invalid discount code")

// CodeTable is the set of codes a shopper may apply.
type CodeTable []domain.DiscountCode

// DefaultCodes returns the store's promotion codes.
func DefaultCodes() CodeTable {
	return CodeTable{
		{Code: "WELCOME10", Percentage: 10, MaxDiscount: decimal.NewFromInt(50)},
		{Code: "SUMMER20", Percentage: 20, MaxDiscount: decimal.NewFromInt(100)},
		{Code: "ILLUSION25", Percentage: 25, MaxDiscount: decimal.NewFromInt(150)},
	}
}

// Lookup finds code ignoring case and surrounding whitespace.
func (t CodeTable) Lookup(code string) (domain.DiscountCode, bool) {
	code = strings.TrimSpace(code)
	for _, c := range t {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return domain.DiscountCode{}, false
}

// ApplyCode sets the cart's discount code, replacing any previous one. Codes
// never stack. On a miss the cart is returned unchanged together with
// ErrInvalidDiscountCode.
func ApplyCode(cart domain.Cart, table CodeTable, code string) (domain.Cart, domain.DiscountCode, error) {
	dc, ok := table.Lookup(code)
	if !ok {
		return cart, domain.DiscountCode{}, ErrInvalidDiscountCode
	}
	return cart.WithDiscount(&dc), dc, nil
}

// RemoveCode clears the discount code, whether or not one is set.
func RemoveCode(cart domain.Cart) domain.Cart {
	return cart.WithDiscount(nil)
}

// AppliedMessage is the confirmation shown after a code is accepted.
func AppliedMessage(lang i18n.Lang, code domain.DiscountCode) string {
	return i18n.T(lang, i18n.MsgDiscountApplied, code.Percentage, code.MaxDiscount.String())
}
