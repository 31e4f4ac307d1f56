package i18n

// Key names a translatable message.
type Key string

const (
	MsgRequiredFields     Key = "form.required_fields"
	MsgFirstNameRequired  Key = "form.first_name.required"
	MsgLastNameRequired   Key = "form.last_name.required"
	MsgPhoneRequired      Key = "form.phone.required"
	MsgPhoneInvalid       Key = "form.phone.invalid"
	MsgEmailRequired      Key = "form.email.required"
	MsgEmailInvalid       Key = "form.email.invalid"
	MsgAddressRequired    Key = "form.address.required"
	MsgBuildingRequired   Key = "form.building.required"
	MsgFieldInvalid       Key = "form.invalid"
	MsgDiscountCodeEmpty  Key = "discount.empty"
	MsgDiscountCodeBad    Key = "discount.invalid"
	MsgDiscountApplied    Key = "discount.applied"
	MsgDiscountRemoved    Key = "discount.removed"
	MsgTShirtSaving       Key = "discount.tshirt_saving"
	MsgSelectSizes        Key = "cart.select_sizes"
	MsgAddedToCart        Key = "cart.added"
	MsgCartEmpty          Key = "cart.empty"
	MsgLineNotFound       Key = "cart.line_not_found"
	MsgProductNotFound    Key = "catalog.product_not_found"
	MsgUnknownSortOption  Key = "catalog.unknown_sort"
	MsgCheckoutInProgress Key = "checkout.in_progress"
	MsgOrderPlaced        Key = "checkout.placed"
	MsgOrderReceived      Key = "checkout.received_degraded"
	MsgOrderFailed        Key = "checkout.failed"
	MsgPaymentCOD         Key = "checkout.payment_cod"
	MsgSubscribed         Key = "landing.subscribed"
	MsgSubscribeFailed    Key = "landing.failed"
	MsgSubscriberMessage  Key = "landing.notification"
)

var catalog = map[Lang]map[Key]string{
	English: {
		MsgRequiredFields:     "Please fill in all required fields",
		MsgFirstNameRequired:  "First name is required",
		MsgLastNameRequired:   "Last name is required",
		MsgPhoneRequired:      "Phone number is required",
		MsgPhoneInvalid:       "Please enter a valid phone number",
		MsgEmailRequired:      "Email is required",
		MsgEmailInvalid:       "Please enter a valid email address",
		MsgAddressRequired:    "Address is required",
		MsgBuildingRequired:   "Building is required",
		MsgFieldInvalid:       "This field is invalid",
		MsgDiscountCodeEmpty:  "Please enter a discount code",
		MsgDiscountCodeBad:    "Invalid discount code",
		MsgDiscountApplied:    "Discount code applied! You'll save %d%% (up to $%s)",
		MsgDiscountRemoved:    "Discount code removed",
		MsgTShirtSaving:       "You're saving $%s on your t-shirt purchase!",
		MsgSelectSizes:        "Please select sizes for all items",
		MsgAddedToCart:        "%d x %s added to your cart",
		MsgCartEmpty:          "Your cart is empty",
		MsgLineNotFound:       "This item is no longer in your cart",
		MsgProductNotFound:    "Product not found",
		MsgUnknownSortOption:  "Unknown sort option %q",
		MsgCheckoutInProgress: "Your order is already being submitted",
		MsgOrderPlaced:        "Your order has been placed successfully. A confirmation email has been sent to your email address.",
		MsgOrderReceived:      "Your order was received, but there was an issue sending the confirmation email. We will contact you shortly.",
		MsgOrderFailed:        "There was an error placing your order: %s. Please try again or contact support.",
		MsgPaymentCOD:         "Cash on Delivery",
		MsgSubscribed:         "Thank you for subscribing! We'll let you know as soon as we launch.",
		MsgSubscribeFailed:    "We couldn't complete your subscription: %s. Please try again later.",
		MsgSubscriberMessage:  "New launch subscriber: %s",
	},
	Arabic: {
		MsgRequiredFields:     "يرجى ملء جميع الحقول المطلوبة",
		MsgFirstNameRequired:  "الاسم الأول مطلوب",
		MsgLastNameRequired:   "اسم العائلة مطلوب",
		MsgPhoneRequired:      "رقم الهاتف مطلوب",
		MsgPhoneInvalid:       "يرجى إدخال رقم هاتف صحيح",
		MsgEmailRequired:      "البريد الإلكتروني مطلوب",
		MsgEmailInvalid:       "يرجى إدخال عنوان بريد إلكتروني صحيح",
		MsgAddressRequired:    "العنوان مطلوب",
		MsgBuildingRequired:   "المبنى مطلوب",
		MsgFieldInvalid:       "هذا الحقل غير صالح",
		MsgDiscountCodeEmpty:  "يرجى إدخال رمز الخصم",
		MsgDiscountCodeBad:    "رمز الخصم غير صالح",
		MsgDiscountApplied:    "تم تطبيق رمز الخصم! ستوفر %d%% (حتى $%s)",
		MsgDiscountRemoved:    "تمت إزالة رمز الخصم",
		MsgTShirtSaving:       "أنت توفر $%s على شراء القمصان!",
		MsgSelectSizes:        "يرجى اختيار المقاسات لجميع القطع",
		MsgAddedToCart:        "تمت إضافة %d × %s إلى سلتك",
		MsgCartEmpty:          "سلة التسوق فارغة",
		MsgLineNotFound:       "هذا المنتج لم يعد في سلتك",
		MsgProductNotFound:    "المنتج غير موجود",
		MsgUnknownSortOption:  "خيار ترتيب غير معروف %q",
		MsgCheckoutInProgress: "جاري إرسال طلبك بالفعل",
		MsgOrderPlaced:        "تم استلام طلبك بنجاح. تم إرسال بريد إلكتروني للتأكيد إلى عنوان بريدك الإلكتروني.",
		MsgOrderReceived:      "تم استلام طلبك، ولكن حدثت مشكلة في إرسال بريد التأكيد. سنتواصل معك قريباً.",
		MsgOrderFailed:        "حدث خطأ أثناء تقديم طلبك: %s. يرجى المحاولة مرة أخرى أو الاتصال بالدعم.",
		MsgPaymentCOD:         "الدفع عند الاستلام",
		MsgSubscribed:         "شكراً لاشتراكك! سنخبرك فور إطلاقنا.",
		MsgSubscribeFailed:    "تعذر إكمال اشتراكك: %s. يرجى المحاولة لاحقاً.",
		MsgSubscriberMessage:  "مشترك جديد في الإطلاق: %s",
	},
}
