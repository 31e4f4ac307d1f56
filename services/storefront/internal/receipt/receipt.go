// Package receipt renders the notification parameters sent when an order is
// placed: a plain-text summary for the store and an HTML receipt for the
// customer, in the language the customer shopped in.
package receipt

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/pricing"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	storeTmpl   = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/store_message.tmpl"))
	confirmTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/confirmation.html.tmpl"))
)

// Composer builds notification parameters for orders.
type Composer struct {
	storeName   string
	countryCode string
}

// NewComposer returns a Composer addressing the store by storeName and
// prefixing customer phone numbers with countryCode.
func NewComposer(storeName, countryCode string) *Composer {
	return &Composer{storeName: storeName, countryCode: countryCode}
}

// Phone is the customer's phone number in international form.
func (c *Composer) Phone(local string) string {
	return c.countryCode + local
}

// StoreParams returns the parameters of the notification sent to the store.
func (c *Composer) StoreParams(order domain.Order) (map[string]string, error) {
	lang := langOf(order)
	lbl := labelsFor(lang)
	s := order.Summary

	details := OrderDetails(lang, order.Lines)
	discounts := DiscountInfo(lang, s)
	payment := i18n.T(lang, i18n.MsgPaymentCOD)

	var buf bytes.Buffer
	err := storeTmpl.Execute(&buf, struct {
		Labels        labels
		Order         domain.Order
		Phone         string
		OrderDetails  string
		DiscountInfo  string
		Subtotal      string
		Total         string
		PaymentMethod string
	}{
		Labels:        lbl,
		Order:         order,
		Phone:         c.Phone(order.Customer.Phone),
		OrderDetails:  details,
		DiscountInfo:  discounts,
		Subtotal:      pricing.FormatMoney(s.Subtotal),
		Total:         pricing.FormatMoney(s.Total),
		PaymentMethod: payment,
	})
	if err != nil {
		return nil, fmt.Errorf("render store message: %w", err)
	}

	return map[string]string{
		"to_name":          c.storeName,
		"from_name":        order.Customer.FullName(),
		"customer_name":    order.Customer.FullName(),
		"customer_email":   order.Customer.Email,
		"customer_phone":   c.Phone(order.Customer.Phone),
		"delivery_address": order.Customer.DeliveryAddress(),
		"order_number":     order.Number,
		"order_details":    details,
		"discount_info":    discounts,
		"subtotal":         pricing.FormatMoney(s.Subtotal),
		"total_amount":     pricing.FormatMoney(s.Total),
		"payment_method":   payment,
		"message":          buf.String(),
	}, nil
}

// ConfirmationParams returns the parameters of the receipt sent to the customer.
func (c *Composer) ConfirmationParams(order domain.Order) (map[string]string, error) {
	html, err := ConfirmationHTML(order)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"email":        order.Customer.Email,
		"order_number": order.Number,
		"message":      html,
	}, nil
}

type lineView struct {
	Name     string
	Quantity int
	Sizes    string
	Price    string
	Total    string
}

// ConfirmationHTML renders the customer receipt. Customer-supplied values
// are HTML escaped.
func ConfirmationHTML(order domain.Order) (string, error) {
	lang := langOf(order)
	s := order.Summary

	lines := make([]lineView, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = lineView{
			Name:     l.Name,
			Quantity: l.Quantity,
			Sizes:    strings.Join(l.Sizes, ", "),
			Price:    pricing.FormatMoney(l.Price),
			Total:    pricing.FormatMoney(l.Total()),
		}
	}

	data := struct {
		Dir            string
		Labels         labels
		Order          domain.Order
		Lines          []lineView
		Subtotal       string
		HasDiscount    bool
		TotalDiscount  string
		TieredDiscount string
		CodeDiscount   string
		Code           string
		Total          string
	}{
		Dir:           lang.Dir(),
		Labels:        labelsFor(lang),
		Order:         order,
		Lines:         lines,
		Subtotal:      pricing.FormatMoney(s.Subtotal),
		HasDiscount:   s.TieredDiscount.IsPositive() || s.CodeDiscount.IsPositive(),
		TotalDiscount: pricing.FormatMoney(s.TotalDiscount()),
		Total:         pricing.FormatMoney(s.Total),
	}
	if s.TieredDiscount.IsPositive() {
		data.TieredDiscount = pricing.FormatMoney(s.TieredDiscount)
	}
	if s.CodeDiscount.IsPositive() {
		data.CodeDiscount = pricing.FormatMoney(s.CodeDiscount)
		data.Code = codeName(s)
	}

	var buf bytes.Buffer
	if err := confirmTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

// OrderDetails lists every line with its quantity, sizes, unit price and
// line total, separated by blank lines.
func OrderDetails(lang i18n.Lang, lines []domain.CartLine) string {
	lbl := labelsFor(lang)
	blocks := make([]string, len(lines))
	for i, l := range lines {
		blocks[i] = strings.Join([]string{
			lbl.Product + ": " + l.Name,
			lbl.Quantity + ": " + strconv.Itoa(l.Quantity),
			lbl.Sizes + ": " + strings.Join(l.Sizes, ", "),
			lbl.Price + ": " + pricing.FormatMoney(l.Price),
			lbl.Subtotal + ": " + pricing.FormatMoney(l.Total()),
		}, "\n")
	}
	return strings.Join(blocks, "\n\n")
}

// DiscountInfo lists the discounts applied to the order. It is empty when
// neither discount applies.
func DiscountInfo(lang i18n.Lang, s domain.Summary) string {
	lbl := labelsFor(lang)
	var rows []string
	if s.TieredDiscount.IsPositive() {
		rows = append(rows, "- "+lbl.TShirtDiscount+": "+pricing.FormatMoney(s.TieredDiscount))
	}
	if s.CodeDiscount.IsPositive() {
		rows = append(rows, fmt.Sprintf("- %s (%s): %s", lbl.DiscountCode, codeName(s), pricing.FormatMoney(s.CodeDiscount)))
	}
	if len(rows) == 0 {
		return ""
	}
	return lbl.DiscountsApplied + "\n" + strings.Join(rows, "\n")
}

func codeName(s domain.Summary) string {
	if s.Code == nil {
		return ""
	}
	return s.Code.Code
}

func langOf(order domain.Order) i18n.Lang {
	if order.Language.Valid() {
		return order.Language
	}
	return i18n.Default
}
