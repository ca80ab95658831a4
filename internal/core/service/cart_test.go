package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/service"
)

var errStore = errors.New("store is down")

// stubStore is a map-backed cart store with injectable failures.
type stubStore struct {
	carts    map[string]domain.Cart
	loadErr  error
	saveErr  error
	saveSeen int
}

func newStubStore() *stubStore {
	return &stubStore{carts: make(map[string]domain.Cart)}
}

func (s *stubStore) Load(_ context.Context, cartID string) (domain.Cart, error) {
	if s.loadErr != nil {
		return domain.Cart{}, s.loadErr
	}
	c, ok := s.carts[cartID]
	if !ok {
		return domain.Cart{}, errors.New("not found")
	}
	return c, nil
}

func (s *stubStore) Save(_ context.Context, cart domain.Cart) error {
	s.saveSeen++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.carts[cart.CartID] = cart
	return nil
}

func item(id string, qty int, price string) domain.CartItem {
	return domain.CartItem{
		ProductID: id, Name: "Produto " + id, Size: "M", Color: "Preto",
		UnitPrice: decimal.RequireFromString(price), Quantity: qty,
	}
}

func TestCartServiceAddItemPersists(t *testing.T) {
	store := newStubStore()
	svc := service.NewCartService(store)

	cart, err := svc.AddItem(context.Background(), "c1", item("1", 2, "100.00"))
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())

	saved, ok := store.carts["c1"]
	require.True(t, ok, "write-through save expected")
	assert.Equal(t, cart, saved)
}

func TestCartServiceFailSoftLoad(t *testing.T) {
	store := newStubStore()
	store.loadErr = errStore
	svc := service.NewCartService(store)

	// A broken snapshot must not break the session: the caller gets a
	// fresh cart with the mutation applied.
	store.saveErr = errStore
	_, err := svc.AddItem(context.Background(), "c1", item("1", 1, "50.00"))
	assert.ErrorIs(t, err, errStore, "save failures still surface")

	store.saveErr = nil
	cart, err := svc.AddItem(context.Background(), "c1", item("1", 1, "50.00"))
	require.NoError(t, err)
	assert.Equal(t, "c1", cart.CartID)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestCartServiceCartReturnsTotals(t *testing.T) {
	store := newStubStore()
	svc := service.NewCartService(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", item("1", 2, "100.00"))
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "c1", "10OFF")
	require.NoError(t, err)

	cart, totals, err := svc.Cart(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "10OFF", cart.CouponCode)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, totals.Discount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, totals.Shipping.IsZero(), "no quote selected yet")
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("180.00")))
}

func TestCartServiceCartMissingIsEmpty(t *testing.T) {
	svc := service.NewCartService(newStubStore())

	cart, totals, err := svc.Cart(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", cart.CartID)
	assert.Zero(t, totals.ItemCount)
}

func TestCartServiceQuoteShipping(t *testing.T) {
	store := newStubStore()
	svc := service.NewCartService(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", item("1", 1, "100.00"))
	require.NoError(t, err)

	quote, err := svc.QuoteShipping(ctx, "c1", "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "01310-100", quote.PostalCode)
	assert.True(t, quote.Fee.Equal(decimal.RequireFromString("20.00")),
		"15.00 base + 5.00 for CEP starting with 0")

	saved := store.carts["c1"]
	require.NotNil(t, saved.Shipping)
	assert.True(t, saved.Shipping.Fee.Equal(quote.Fee))
}

func TestCartServiceClearCart(t *testing.T) {
	store := newStubStore()
	svc := service.NewCartService(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", item("1", 3, "100.00"))
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, "c1", "10OFF")
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "c1"))

	cart, _, err := svc.Cart(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.CouponCode)
	assert.Nil(t, cart.Shipping)
}

func TestCartServiceCanceledContext(t *testing.T) {
	svc := service.NewCartService(newStubStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AddItem(ctx, "c1", item("1", 1, "10.00"))
	assert.ErrorIs(t, err, context.Canceled)
}
