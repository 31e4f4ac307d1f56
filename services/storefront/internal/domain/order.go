package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Georgesib05/comming-soon/pkg/i18n"
)

// PaymentCashOnDelivery is the only payment method the store accepts.
const PaymentCashOnDelivery = "cod"

// Summary is the priced view of a cart.
type Summary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TieredDiscount decimal.Decimal `json:"tshirt_discount"`
	CodeDiscount   decimal.Decimal `json:"code_discount"`
	Total          decimal.Decimal `json:"total"`
	ItemCount      int             `json:"item_count"`
	TShirtCount    int             `json:"tshirt_count"`
	Code           *DiscountCode   `json:"discount_code,omitempty"`
}

// TotalDiscount is the sum of both discounts.
func (s Summary) TotalDiscount() decimal.Decimal {
	return s.TieredDiscount.Add(s.CodeDiscount)
}

// Customer holds the checkout form contact and delivery details.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Building  string `json:"building"`
	Floor     string `json:"floor,omitempty"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DeliveryAddress formats the address as "addr, Building: b[, Floor: f]".
func (c Customer) DeliveryAddress() string {
	s := fmt.Sprintf("%s, Building: %s", c.Address, c.Building)
	if strings.TrimSpace(c.Floor) != "" {
		s += ", Floor: " + c.Floor
	}
	return s
}

// Order is composed at checkout and lives only while its notifications are
// being sent. Orders are never stored.
type Order struct {
	Number        string     `json:"order_number"`
	SessionID     string     `json:"session_id"`
	Customer      Customer   `json:"customer"`
	Language      i18n.Lang  `json:"language"`
	Lines         []CartLine `json:"lines"`
	Summary       Summary    `json:"summary"`
	PaymentMethod string     `json:"payment_method"`
	PlacedAt      time.Time  `json:"placed_at"`
}

// OrderNumber derives the human-facing order number from the placement time.
func OrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}
