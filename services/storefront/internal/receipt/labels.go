package receipt

import "github.com/Georgesib05/comming-soon/pkg/i18n"

type labels struct {
	// Store message section headers.
	OrderDetails    string
	CustomerInfo    string
	DeliveryAddress string
	OrderItems      string

	Name     string
	Email    string
	Phone    string
	Address  string
	Building string
	Floor    string

	Product  string
	Quantity string
	Sizes    string
	Price    string
	Subtotal string

	DiscountsApplied string
	TShirtDiscount   string
	DiscountCode     string
	TotalAmount      string
	PaymentMethod    string

	// Customer receipt.
	ThankYou       string
	ShippingNotice string
	OrderNumber    string
	PricePerItem   string
	LineTotal      string
	Discounts      string
	EmailSentTo    string
}

var labelSets = map[i18n.Lang]labels{
	i18n.English: {
		OrderDetails:     "Order Details:",
		CustomerInfo:     "Customer Information:",
		DeliveryAddress:  "Delivery Address:",
		OrderItems:       "Order Items:",
		Name:             "Name",
		Email:            "Email",
		Phone:            "Phone",
		Address:          "Address",
		Building:         "Building",
		Floor:            "Floor",
		Product:          "Product",
		Quantity:         "Quantity",
		Sizes:            "Sizes",
		Price:            "Price",
		Subtotal:         "Subtotal",
		DiscountsApplied: "Discounts Applied:",
		TShirtDiscount:   "T-shirt Quantity Discount",
		DiscountCode:     "Discount Code",
		TotalAmount:      "Total Amount",
		PaymentMethod:    "Payment Method",
		ThankYou:         "Thank You for Your Order",
		ShippingNotice:   "The shipping company will contact you as soon as your order arrives.",
		OrderNumber:      "Order",
		PricePerItem:     "Price per item",
		LineTotal:        "Total",
		Discounts:        "Discounts",
		EmailSentTo:      "Email sent to",
	},
	i18n.Arabic: {
		OrderDetails:     "تفاصيل الطلب:",
		CustomerInfo:     "معلومات العميل:",
		DeliveryAddress:  "عنوان التوصيل:",
		OrderItems:       "عناصر الطلب:",
		Name:             "الاسم",
		Email:            "البريد الإلكتروني",
		Phone:            "الهاتف",
		Address:          "العنوان",
		Building:         "المبنى",
		Floor:            "الطابق",
		Product:          "المنتج",
		Quantity:         "الكمية",
		Sizes:            "المقاسات",
		Price:            "السعر",
		Subtotal:         "المجموع الفرعي",
		DiscountsApplied: "الخصومات المطبقة:",
		TShirtDiscount:   "خصم كمية القمصان",
		DiscountCode:     "رمز الخصم",
		TotalAmount:      "المبلغ الإجمالي",
		PaymentMethod:    "طريقة الدفع",
		ThankYou:         "شكراً لطلبك",
		ShippingNotice:   "ستتصل بك شركة الشحن بمجرد وصول طلبك.",
		OrderNumber:      "رقم الطلب",
		PricePerItem:     "السعر لكل قطعة",
		LineTotal:        "المجموع",
		Discounts:        "الخصومات",
		EmailSentTo:      "تم إرسال البريد الإلكتروني إلى",
	},
}

func labelsFor(l i18n.Lang) labels {
	if lbl, ok := labelSets[l]; ok {
		return lbl
	}
	return labelSets[i18n.Default]
}
