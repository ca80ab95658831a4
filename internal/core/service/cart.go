package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var _ port.CartOperator = (*CartService)(nil)

// CartService owns the cart aggregate: every mutation is load, apply,
// write-through save. Rehydration is fail-soft: a missing or corrupt
// snapshot degrades to an empty cart instead of surfacing an error.
type CartService struct {
	store port.CartStore
}

func NewCartService(store port.CartStore) CartService {
	return CartService{store}
}

func (s CartService) Cart(
	ctx context.Context, cartID string,
) (domain.Cart, domain.CartTotals, error) {
	const op = "CartService.Cart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, domain.CartTotals{}, fmt.Errorf("%s: %w", op, err)
	}

	c := s.load(ctx, cartID)
	return c, c.Totals(), nil
}

// AddItem merges the item into the cart. Stock is not checked against the
// catalog, matching the storefront behaviour.
func (s CartService) AddItem(
	ctx context.Context, cartID string, item domain.CartItem,
) (domain.Cart, error) {
	const op = "CartService.AddItem"
	return s.update(ctx, op, cartID, func(c *domain.Cart) {
		c.AddItem(item)
	})
}

func (s CartService) RemoveItem(
	ctx context.Context, cartID string, key domain.LineKey,
) (domain.Cart, error) {
	const op = "CartService.RemoveItem"
	return s.update(ctx, op, cartID, func(c *domain.Cart) {
		c.RemoveItem(key)
	})
}

func (s CartService) SetQuantity(
	ctx context.Context, cartID string, key domain.LineKey, qty int,
) (domain.Cart, error) {
	const op = "CartService.SetQuantity"
	return s.update(ctx, op, cartID, func(c *domain.Cart) {
		c.SetQuantity(key, qty)
	})
}

// ApplyCoupon stores the code as entered; an unrecognised code simply
// resolves to a zero discount at totals time.
func (s CartService) ApplyCoupon(
	ctx context.Context, cartID, code string,
) (domain.Cart, error) {
	const op = "CartService.ApplyCoupon"
	return s.update(ctx, op, cartID, func(c *domain.Cart) {
		c.CouponCode = code
	})
}

func (s CartService) ClearCoupon(
	ctx context.Context, cartID string,
) (domain.Cart, error) {
	const op = "CartService.ClearCoupon"
	return s.update(ctx, op, cartID, func(c *domain.Cart) {
		c.CouponCode = ""
	})
}

// QuoteShipping estimates a fee for the CEP against the current subtotal
// and stores it as the active quote.
func (s CartService) QuoteShipping(
	ctx context.Context, cartID, postalCode string,
) (domain.ShippingQuote, error) {
	const op = "CartService.QuoteShipping"

	var quote domain.ShippingQuote
	_, err := s.update(ctx, op, cartID, func(c *domain.Cart) {
		quote = domain.ShippingQuote{
			PostalCode: postalCode,
			Fee:        domain.EstimateShipping(postalCode, c.Subtotal()),
		}
		c.Shipping = &quote
	})
	if err != nil {
		return domain.ShippingQuote{}, err
	}
	return quote, nil
}

func (s CartService) ClearCart(ctx context.Context, cartID string) error {
	const op = "CartService.ClearCart"
	_, err := s.update(ctx, op, cartID, func(c *domain.Cart) {
		c.Clear()
	})
	return err
}

func (s CartService) update(
	ctx context.Context, op, cartID string, mutate func(*domain.Cart),
) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	c := s.load(ctx, cartID)
	mutate(&c)

	if err := s.store.Save(ctx, c); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CartService) load(ctx context.Context, cartID string) domain.Cart {
	const op = "CartService.load"

	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		slog.With("op", op).Warn(
			"starting with empty cart", "cartID", cartID, "err", err,
		)
		return domain.NewCart(cartID)
	}
	c.CartID = cartID
	return c
}
