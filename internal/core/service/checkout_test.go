package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/service"
)

type MockOrderProducer struct {
	mock.Mock
}

func (m *MockOrderProducer) ProduceOrder(
	ctx context.Context, order domain.Order,
) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockOrderArchiver struct {
	mock.Mock
}

func (m *MockOrderArchiver) ArchiveOrder(
	ctx context.Context, order domain.Order,
) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func checkoutCustomer() domain.Customer {
	return domain.Customer{
		Name: "Ana Souza", Email: "ana@example.com", Phone: "5561999990000",
	}
}

func checkoutAddress() domain.Address {
	return domain.Address{
		Street: "SQN 410 Bloco B", Number: "104", District: "Asa Norte",
		City: "Brasília", State: "DF", PostalCode: "70000-000",
	}
}

func loadedStore(t *testing.T) *stubStore {
	t.Helper()
	store := newStubStore()
	cart := domain.NewCart("c1")
	cart.AddItem(item("1", 2, "100.00"))
	cart.CouponCode = "10OFF"
	require.NoError(t, store.Save(context.Background(), cart))
	return store
}

func TestCheckoutProducesOrder(t *testing.T) {
	store := loadedStore(t)
	producer := &MockOrderProducer{}
	archiver := &MockOrderArchiver{}
	producer.On("ProduceOrder", mock.Anything, mock.Anything).Return(nil).Once()
	archiver.On("ArchiveOrder", mock.Anything, mock.Anything).Return(nil).Once()

	svc := service.NewCheckoutService(store, producer, archiver)
	order, err := svc.Checkout(
		context.Background(), "c1",
		checkoutCustomer(), checkoutAddress(),
		domain.Payment{Method: "Pix", Installments: 1},
	)
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, 2, order.Totals.ItemCount)
	assert.False(t, order.PlacedAt.IsZero())
	assert.Contains(t, order.Message(), "Nome: Ana Souza")

	producer.AssertExpectations(t)
	archiver.AssertExpectations(t)

	cart, ok := store.carts["c1"]
	require.True(t, ok)
	assert.Empty(t, cart.Items, "cart is cleared after checkout")
	assert.Empty(t, cart.CouponCode)
}

func TestCheckoutFailSoftPeriphery(t *testing.T) {
	store := loadedStore(t)
	producer := &MockOrderProducer{}
	archiver := &MockOrderArchiver{}
	producer.On("ProduceOrder", mock.Anything, mock.Anything).Return(errStore)
	archiver.On("ArchiveOrder", mock.Anything, mock.Anything).Return(errStore)

	svc := service.NewCheckoutService(store, producer, archiver)
	order, err := svc.Checkout(
		context.Background(), "c1",
		checkoutCustomer(), checkoutAddress(),
		domain.Payment{Method: "Pix", Installments: 1},
	)

	require.NoError(t, err, "broken periphery must not block the order")
	assert.NotEmpty(t, order.OrderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := service.NewCheckoutService(newStubStore(), nil, nil)

	_, err := svc.Checkout(
		context.Background(), "missing",
		checkoutCustomer(), checkoutAddress(),
		domain.Payment{Method: "Pix", Installments: 1},
	)
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestCheckoutValidation(t *testing.T) {
	store := loadedStore(t)
	svc := service.NewCheckoutService(store, nil, nil)
	pay := domain.Payment{Method: "Pix", Installments: 1}

	cases := []struct {
		name     string
		customer domain.Customer
		address  domain.Address
	}{
		{"MissingName", domain.Customer{Email: "a@b.com", Phone: "1"}, checkoutAddress()},
		{"BadEmail", domain.Customer{Name: "Ana", Email: "not-an-email", Phone: "1"}, checkoutAddress()},
		{"MissingPhone", domain.Customer{Name: "Ana", Email: "a@b.com"}, checkoutAddress()},
		{"MissingCity", checkoutCustomer(), domain.Address{
			Street: "R", Number: "1", District: "D", State: "DF", PostalCode: "70000-000",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Checkout(
				context.Background(), "c1", tc.customer, tc.address, pay,
			)
			assert.ErrorIs(t, err, service.ErrInvalidCheckout)
		})
	}

	cart := store.carts["c1"]
	assert.NotEmpty(t, cart.Items, "rejected checkout leaves the cart intact")
}
