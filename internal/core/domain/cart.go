package domain

import "github.com/shopspring/decimal"

type (
	// A LineKey identifies one cart line: the same product in a different
	// size or color is a different line.
	LineKey struct {
		ProductID string
		Size      string
		Color     string
	}

	CartItem struct {
		ProductID string
		Name      string
		Size      string
		Color     string
		Image     string
		UnitPrice decimal.Decimal
		Quantity  int
	}

	ShippingQuote struct {
		PostalCode string
		Fee        decimal.Decimal
	}

	// A Cart holds the line items in insertion order plus the cart-level
	// coupon and shipping selection. Totals are always derived, never stored.
	Cart struct {
		CartID     string
		Items      []CartItem
		CouponCode string
		Shipping   *ShippingQuote
	}

	CartTotals struct {
		ItemCount int
		Subtotal  decimal.Decimal
		Discount  decimal.Decimal
		Shipping  decimal.Decimal
		Total     decimal.Decimal
	}
)

func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func NewCart(cartID string) Cart {
	return Cart{CartID: cartID}
}

// AddItem merges the item into an existing line with the same key or
// appends a new line. A quantity below 1 is normalised to 1. Stock is
// deliberately not checked on add, matching the storefront behaviour.
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if i := c.indexOf(item.Key()); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the matching line, no-op when absent.
func (c *Cart) RemoveItem(key LineKey) {
	i := c.indexOf(key)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// SetQuantity overwrites the line quantity; zero or negative removes the
// line. Setting quantity on an absent line is a no-op.
func (c *Cart) SetQuantity(key LineKey, qty int) {
	if qty <= 0 {
		c.RemoveItem(key)
		return
	}
	if i := c.indexOf(key); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

func (c *Cart) Increment(key LineKey) {
	if i := c.indexOf(key); i >= 0 {
		c.SetQuantity(key, c.Items[i].Quantity+1)
	}
}

func (c *Cart) Decrement(key LineKey) {
	if i := c.indexOf(key); i >= 0 {
		c.SetQuantity(key, c.Items[i].Quantity-1)
	}
}

// Clear empties the lines, the coupon and the shipping selection.
func (c *Cart) Clear() {
	c.Items = nil
	c.CouponCode = ""
	c.Shipping = nil
}

func (c Cart) ItemCount() (n int) {
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Totals recomputes every derived value from the current lines, so no
// cached figure can diverge from the cart state.
func (c Cart) Totals() CartTotals {
	subtotal := c.Subtotal()
	discount := ResolveCoupon(c.CouponCode, subtotal)

	shipping := decimal.Zero
	if c.Shipping != nil {
		shipping = c.Shipping.Fee
	}

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return CartTotals{
		ItemCount: c.ItemCount(),
		Subtotal:  subtotal,
		Discount:  discount,
		Shipping:  shipping,
		Total:     total,
	}
}

func (c Cart) indexOf(key LineKey) int {
	for i, item := range c.Items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}
