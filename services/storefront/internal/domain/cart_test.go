package domain

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() Product {
	return Product{
		ID:       1,
		Name:     "Ocular Trap T-Shirt",
		Price:    decimal.RequireFromString("19.99"),
		Image:    "/Ocular-trap.png",
		Category: "T-Shirts",
		Sizes:    []string{"S", "M", "L"},
	}
}

// ============================================================================
// CartLine Tests
// ============================================================================

func TestCartLine_Key(t *testing.T) {
	line := CartLine{ProductID: 1, Sizes: []string{"S", "M"}}
	assert.Equal(t, "1-S-M", line.Key())
}

func TestCartLine_Key_SizeOrderMatters(t *testing.T) {
	a := CartLine{ProductID: 1, Sizes: []string{"S", "M"}}
	b := CartLine{ProductID: 1, Sizes: []string{"M", "S"}}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestCartLine_Total(t *testing.T) {
	line := CartLine{Price: decimal.RequireFromString("19.99"), Quantity: 3}
	assert.True(t, decimal.RequireFromString("59.97").Equal(line.Total()))
}

func TestProduct_NewLine(t *testing.T) {
	sizes := []string{"S", "L"}
	line := sampleProduct().NewLine(sizes)

	assert.Equal(t, 1, line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, []string{"S", "L"}, line.Sizes)

	sizes[0] = "XL"
	assert.Equal(t, "S", line.Sizes[0], "line must not alias the caller's slice")
}

func TestProduct_HasSize(t *testing.T) {
	p := sampleProduct()
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XL"))
	assert.False(t, p.HasSize(""))
}

// ============================================================================
// Cart Tests
// ============================================================================

func TestCart_Add_AlwaysAppends(t *testing.T) {
	p := sampleProduct()
	c := NewCart("sess")

	c = c.Add(p.NewLine([]string{"S", "M"}))
	c = c.Add(p.NewLine([]string{"S", "M"}))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, c.Lines[0].Key(), c.Lines[1].Key())
	assert.NotEqual(t, c.Lines[0].ID, c.Lines[1].ID)
	assert.Equal(t, "1-S-M#1", c.Lines[0].ID)
	assert.Equal(t, "1-S-M#2", c.Lines[1].ID)
	assert.Equal(t, 4, c.Count())
}

func TestCart_Add_DoesNotMutateReceiver(t *testing.T) {
	c := NewCart("sess")
	next := c.Add(sampleProduct().NewLine([]string{"S"}))

	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Seq)
	assert.Len(t, next.Lines, 1)
}

func TestCart_Remove_DuplicatesIndependently(t *testing.T) {
	p := sampleProduct()
	c := NewCart("sess").
		Add(p.NewLine([]string{"M"})).
		Add(p.NewLine([]string{"M"}))

	out, err := c.Remove(c.Lines[0].ID)
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.Equal(t, c.Lines[1].ID, out.Lines[0].ID)
	assert.Len(t, c.Lines, 2, "receiver unchanged")
}

func TestCart_Remove_UnknownLine(t *testing.T) {
	c := NewCart("sess").Add(sampleProduct().NewLine([]string{"M"}))

	out, err := c.Remove("9-XL#7")
	assert.ErrorIs(t, err, ErrLineNotFound)
	assert.Len(t, out.Lines, 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := NewCart("sess").Add(sampleProduct().NewLine([]string{"S", "M"}))
	id := c.Lines[0].ID

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{name: "increment", delta: 1, want: 3},
		{name: "decrement", delta: -1, want: 1},
		{name: "floor at one", delta: -5, want: 1},
		{name: "no change", delta: 0, want: 2},
		{name: "saturates", delta: math.MaxInt, want: math.MaxInt},
		{name: "large negative", delta: math.MinInt, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := c.UpdateQuantity(id, tc.delta)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Lines[0].Quantity)
			assert.Equal(t, 2, c.Lines[0].Quantity, "receiver unchanged")
		})
	}
}

func TestCart_UpdateQuantity_UnknownLine(t *testing.T) {
	_, err := NewCart("sess").UpdateQuantity("nope", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCart_ClearAndDiscount(t *testing.T) {
	code := &DiscountCode{Code: "WELCOME10", Percentage: 10, MaxDiscount: decimal.NewFromInt(50)}
	c := NewCart("sess").
		Add(sampleProduct().NewLine([]string{"S"})).
		WithDiscount(code)

	require.NotNil(t, c.Discount)
	code.Percentage = 99
	assert.Equal(t, 10, c.Discount.Percentage, "discount must be copied")

	cleared := c.Clear()
	assert.True(t, cleared.IsEmpty())
	assert.Nil(t, cleared.Discount)
	assert.Zero(t, cleared.Count())
	assert.False(t, c.IsEmpty())

	assert.Nil(t, c.WithDiscount(nil).Discount)
}

func TestCart_Line(t *testing.T) {
	c := NewCart("sess").Add(sampleProduct().NewLine([]string{"L"}))

	line, ok := c.Line(c.Lines[0].ID)
	assert.True(t, ok)
	assert.Equal(t, []string{"L"}, line.Sizes)

	_, ok = c.Line("missing")
	assert.False(t, ok)
}

// ============================================================================
// Order Tests
// ============================================================================

func TestCustomer_DeliveryAddress(t *testing.T) {
	c := Customer{Address: "Hamra St", Building: "Blue Tower"}
	assert.Equal(t, "Hamra St, Building: Blue Tower", c.DeliveryAddress())

	c.Floor = "3"
	assert.Equal(t, "Hamra St, Building: Blue Tower, Floor: 3", c.DeliveryAddress())

	c.Floor = "  "
	assert.Equal(t, "Hamra St, Building: Blue Tower", c.DeliveryAddress())
}

func TestCustomer_FullName(t *testing.T) {
	assert.Equal(t, "Lina Haddad", Customer{FirstName: "Lina", LastName: "Haddad"}.FullName())
}

func TestOrderNumber(t *testing.T) {
	ts := time.UnixMilli(1718000000123)
	assert.Equal(t, "ORD-1718000000123", OrderNumber(ts))
}

func TestSummary_TotalDiscount(t *testing.T) {
	s := Summary{
		TieredDiscount: decimal.RequireFromString("9.96"),
		CodeDiscount:   decimal.RequireFromString("5.5"),
	}
	assert.True(t, decimal.RequireFromString("15.46").Equal(s.TotalDiscount()))
}
