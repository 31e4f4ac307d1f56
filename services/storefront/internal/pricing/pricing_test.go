package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func shirt(qty int) domain.CartLine {
	sizes := make([]string, qty)
	for i := range sizes {
		sizes[i] = "M"
	}
	return domain.CartLine{
		ProductID: 1,
		Name:      "Ocular Trap T-Shirt",
		Price:     dec("19.99"),
		Category:  "T-Shirts",
		Quantity:  qty,
		Sizes:     sizes,
	}
}

func cartWith(lines ...domain.CartLine) domain.Cart {
	c := domain.NewCart("sess")
	for _, l := range lines {
		c = c.Add(l)
	}
	return c
}

// ---------------------------------------------------------------------------
// TieredDiscount
// ---------------------------------------------------------------------------

func TestTieredDiscount_Boundaries(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0"},
		{1, "0"},
		{2, "4.98"},
		{3, "4.98"},
		{4, "9.96"},
		{5, "9.96"},
		{6, "14.94"},
		{7, "14.94"},
		{8, "19.92"},
		{9, "19.92"},
		{100, "19.92"},
	}

	for _, tc := range tests {
		assertDecimal(t, tc.want, TieredDiscount(tc.count))
	}
}

// ---------------------------------------------------------------------------
// TShirtCount / Subtotal
// ---------------------------------------------------------------------------

func TestIsTShirt(t *testing.T) {
	tests := []struct {
		name string
		line domain.CartLine
		want bool
	}{
		{name: "name with hyphen", line: domain.CartLine{Name: "Visual Trap T-Shirt"}, want: true},
		{name: "name without hyphen", line: domain.CartLine{Name: "Classic TSHIRT"}, want: true},
		{name: "category only", line: domain.CartLine{Name: "Illusion Tee", Category: "T-Shirts"}, want: true},
		{name: "neither", line: domain.CartLine{Name: "Poster", Category: "Prints"}, want: false},
		{name: "shirt is not a t-shirt", line: domain.CartLine{Name: "Linen Shirt", Category: "Shirts"}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTShirt(tc.line))
		})
	}
}

func TestTShirtCount_IgnoresOtherProducts(t *testing.T) {
	poster := domain.CartLine{Name: "Poster", Category: "Prints", Price: dec("5"), Quantity: 3}
	lines := []domain.CartLine{shirt(2), poster, shirt(1)}

	assert.Equal(t, 3, TShirtCount(lines))
	assertDecimal(t, "74.97", Subtotal(lines))
}

func TestSubtotal_Empty(t *testing.T) {
	assertDecimal(t, "0", Subtotal(nil))
}

// ---------------------------------------------------------------------------
// CodeDiscount
// ---------------------------------------------------------------------------

func TestCodeDiscount_NilCode(t *testing.T) {
	assertDecimal(t, "0", CodeDiscount(dec("100"), dec("0"), nil))
}

func TestCodeDiscount_AppliesAfterTiered(t *testing.T) {
	code := &domain.DiscountCode{Code: "WELCOME10", Percentage: 10, MaxDiscount: dec("50")}
	assertDecimal(t, "9.004", CodeDiscount(dec("100"), dec("9.96"), code))
}

func TestCodeDiscount_CappedAtMax(t *testing.T) {
	codes := DefaultCodes()
	for _, c := range codes {
		got := CodeDiscount(dec("100000"), dec("19.92"), &c)
		assert.True(t, got.Equal(c.MaxDiscount), "%s: want cap %s, got %s", c.Code, c.MaxDiscount, got)
	}
}

func TestCodeDiscount_BoundedProperty(t *testing.T) {
	codes := DefaultCodes()
	for qty := 0; qty <= 50; qty++ {
		lines := []domain.CartLine{}
		if qty > 0 {
			lines = append(lines, shirt(qty))
		}
		sub := Subtotal(lines)
		tiered := TieredDiscount(TShirtCount(lines))
		for _, c := range codes {
			got := CodeDiscount(sub, tiered, &c)
			if sub.Sub(tiered).IsNegative() {
				continue
			}
			assert.False(t, got.IsNegative(), "qty=%d code=%s", qty, c.Code)
			assert.True(t, got.LessThanOrEqual(c.MaxDiscount), "qty=%d code=%s", qty, c.Code)
		}
	}
}

// ---------------------------------------------------------------------------
// Calculate scenarios
// ---------------------------------------------------------------------------

func TestCalculate_FiveShirtsNoCode(t *testing.T) {
	s := Calculate(cartWith(shirt(5)))

	assertDecimal(t, "99.95", s.Subtotal)
	assertDecimal(t, "9.96", s.TieredDiscount)
	assertDecimal(t, "0", s.CodeDiscount)
	assertDecimal(t, "89.99", s.Total)
	assert.Equal(t, 5, s.ItemCount)
	assert.Equal(t, 5, s.TShirtCount)
	assert.Nil(t, s.Code)
}

func TestCalculate_FiveShirtsSummer20(t *testing.T) {
	c, _, err := ApplyCode(cartWith(shirt(3), shirt(2)), DefaultCodes(), "summer20")
	require.NoError(t, err)

	s := Calculate(c)

	assertDecimal(t, "99.95", s.Subtotal)
	assertDecimal(t, "9.96", s.TieredDiscount)
	assertDecimal(t, "17.998", s.CodeDiscount)
	assertDecimal(t, "71.992", s.Total)
	require.NotNil(t, s.Code)
	assert.Equal(t, "SUMMER20", s.Code.Code)
}

func TestCalculate_SingleShirt(t *testing.T) {
	s := Calculate(cartWith(shirt(1)))
	assertDecimal(t, "19.99", s.Total)
	assertDecimal(t, "0", s.TieredDiscount)
}

func TestCalculate_EmptyCart(t *testing.T) {
	s := Calculate(domain.NewCart("sess"))
	assertDecimal(t, "0", s.Total)
	assert.Zero(t, s.ItemCount)
}

func TestCalculate_TotalNotClamped(t *testing.T) {
	cheap := domain.CartLine{Name: "Sample T-Shirt", Price: dec("1"), Quantity: 2}
	s := Calculate(cartWith(cheap))

	assertDecimal(t, "2", s.Subtotal)
	assertDecimal(t, "4.98", s.TieredDiscount)
	assertDecimal(t, "-2.98", s.Total)
}

// ---------------------------------------------------------------------------
// ApplyCode / RemoveCode
// ---------------------------------------------------------------------------

func TestApplyCode_UnknownLeavesCartUnchanged(t *testing.T) {
	start, _, err := ApplyCode(cartWith(shirt(1)), DefaultCodes(), "WELCOME10")
	require.NoError(t, err)

	out, _, err := ApplyCode(start, DefaultCodes(), "BOGUS")
	assert.ErrorIs(t, err, ErrInvalidDiscountCode)
	require.NotNil(t, out.Discount)
	assert.Equal(t, "WELCOME10", out.Discount.Code)
}

func TestApplyCode_CaseInsensitiveReplaceNotStack(t *testing.T) {
	c := cartWith(shirt(1))

	c, first, err := ApplyCode(c, DefaultCodes(), "welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", first.Code)

	c, second, err := ApplyCode(c, DefaultCodes(), " Illusion25 ")
	require.NoError(t, err)
	assert.Equal(t, "ILLUSION25", second.Code)

	require.NotNil(t, c.Discount)
	assert.Equal(t, "ILLUSION25", c.Discount.Code)
	assert.Equal(t, 25, c.Discount.Percentage)
}

func TestApplyCode_EmptyCode(t *testing.T) {
	_, _, err := ApplyCode(domain.NewCart("sess"), DefaultCodes(), "")
	assert.ErrorIs(t, err, ErrInvalidDiscountCode)
}

func TestRemoveCode(t *testing.T) {
	c, _, err := ApplyCode(cartWith(shirt(1)), DefaultCodes(), "SUMMER20")
	require.NoError(t, err)

	assert.Nil(t, RemoveCode(c).Discount)
	assert.Nil(t, RemoveCode(domain.NewCart("sess")).Discount)
}

func TestAppliedMessage(t *testing.T) {
	code, ok := DefaultCodes().Lookup("WELCOME10")
	require.True(t, ok)
	assert.Equal(t, "Discount code applied! You'll save 10% (up to $50)", AppliedMessage(i18n.English, code))
	assert.NotEmpty(t, AppliedMessage(i18n.Arabic, code))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$19.99", FormatMoney(dec("19.99")))
	assert.Equal(t, "$71.99", FormatMoney(dec("71.992")))
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "-$2.98", FormatMoney(dec("-2.98")))
}
