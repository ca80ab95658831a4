package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finaestampa/storefront/internal/core/domain"
)

func vestidoM(qty int) domain.CartItem {
	return domain.CartItem{
		ProductID: "1",
		Name:      "Vestido Longo",
		Size:      "M",
		Color:     "Preto",
		UnitPrice: decimal.RequireFromString("100.00"),
		Quantity:  qty,
	}
}

func blusaP(qty int) domain.CartItem {
	return domain.CartItem{
		ProductID: "2",
		Name:      "Blusa de Seda",
		Size:      "P",
		Color:     "Branco",
		UnitPrice: decimal.RequireFromString("50.00"),
		Quantity:  qty,
	}
}

func TestCartAddItem(t *testing.T) {
	t.Run("MergeOnSameKey", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(2))
		c.AddItem(vestidoM(3))

		require.Len(t, c.Items, 1)
		assert.Equal(t, 5, c.Items[0].Quantity)
	})

	t.Run("DifferentSizeIsNewLine", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(1))

		other := vestidoM(1)
		other.Size = "G"
		c.AddItem(other)

		assert.Len(t, c.Items, 2)
	})

	t.Run("QuantityBelowOneNormalisedToOne", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(0))
		require.Len(t, c.Items, 1)
		assert.Equal(t, 1, c.Items[0].Quantity)

		c = domain.NewCart("c2")
		c.AddItem(vestidoM(-3))
		require.Len(t, c.Items, 1)
		assert.Equal(t, 1, c.Items[0].Quantity)
	})
}

func TestCartRemoveItem(t *testing.T) {
	t.Run("RemovesMatchingLine", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(2))
		c.AddItem(blusaP(1))

		c.RemoveItem(vestidoM(0).Key())

		require.Len(t, c.Items, 1)
		assert.Equal(t, "2", c.Items[0].ProductID)
	})

	t.Run("AbsentKeyIsNoOp", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(2))
		before := c

		c.RemoveItem(domain.LineKey{ProductID: "99", Size: "M", Color: "Azul"})

		assert.Equal(t, before, c)
	})
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("Overwrites", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(2))
		c.SetQuantity(vestidoM(0).Key(), 7)
		assert.Equal(t, 7, c.Items[0].Quantity)
	})

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(2))
		c.SetQuantity(vestidoM(0).Key(), 0)
		assert.Empty(t, c.Items)
	})

	t.Run("NegativeRemovesLine", func(t *testing.T) {
		c := domain.NewCart("c1")
		c.AddItem(vestidoM(2))
		c.SetQuantity(vestidoM(0).Key(), -5)
		assert.Empty(t, c.Items)
	})
}

func TestCartIncrementDecrement(t *testing.T) {
	c := domain.NewCart("c1")
	c.AddItem(vestidoM(1))
	key := vestidoM(0).Key()

	c.Increment(key)
	assert.Equal(t, 2, c.Items[0].Quantity)

	c.Decrement(key)
	assert.Equal(t, 1, c.Items[0].Quantity)

	c.Decrement(key)
	assert.Empty(t, c.Items, "decrement to zero removes the line")
}

func TestCartClear(t *testing.T) {
	c := domain.NewCart("c1")
	c.AddItem(vestidoM(2))
	c.CouponCode = "10OFF"
	c.Shipping = &domain.ShippingQuote{
		PostalCode: "01310-100",
		Fee:        decimal.RequireFromString("15.00"),
	}

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Empty(t, c.CouponCode)
	assert.Nil(t, c.Shipping)
}

func TestCartTotalsConsistency(t *testing.T) {
	c := domain.NewCart("c1")
	c.AddItem(vestidoM(2))
	c.AddItem(blusaP(4))
	c.SetQuantity(blusaP(0).Key(), 1)
	c.AddItem(vestidoM(1))
	c.RemoveItem(domain.LineKey{ProductID: "99"})

	want := decimal.Zero
	for _, item := range c.Items {
		want = want.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, c.Subtotal().Equal(want),
		"subtotal %s != sum of lines %s", c.Subtotal(), want)
	assert.Equal(t, 4, c.ItemCount())
}

func TestCartTotalsScenario(t *testing.T) {
	c := domain.NewCart("c1")
	c.AddItem(vestidoM(2))
	c.AddItem(blusaP(1))
	c.CouponCode = "10OFF"
	c.Shipping = &domain.ShippingQuote{
		PostalCode: "70000-000",
		Fee:        decimal.RequireFromString("15.00"),
	}

	totals := c.Totals()

	assert.Equal(t, 3, totals.ItemCount)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, totals.Discount.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("240.00")))
}

func TestCartTotalsNeverNegative(t *testing.T) {
	c := domain.NewCart("c1")
	c.AddItem(blusaP(1))
	c.CouponCode = "VALE200"

	totals := c.Totals()

	assert.True(t, totals.Discount.Equal(decimal.RequireFromString("50.00")),
		"flat coupon is capped at the subtotal")
	assert.True(t, totals.Total.IsZero())
}
