package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCheckout = errors.New("invalid checkout data")
)

var _ port.CheckoutProcessor = (*CheckoutService)(nil)

// CheckoutService turns the current cart into an order. The order itself
// never fails on periphery errors: publishing and archiving are logged and
// skipped so the customer still gets the confirmation message.
type CheckoutService struct {
	store    port.CartStore
	producer port.OrderProducer
	archiver port.OrderArchiver
	now      func() time.Time
	newID    func() string
}

func NewCheckoutService(
	store port.CartStore,
	producer port.OrderProducer,
	archiver port.OrderArchiver,
) CheckoutService {
	return CheckoutService{
		store:    store,
		producer: producer,
		archiver: archiver,
		now:      time.Now,
		newID:    newOrderID,
	}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s CheckoutService) Checkout(
	ctx context.Context,
	cartID string,
	customer domain.Customer,
	address domain.Address,
	payment domain.Payment,
) (domain.Order, error) {
	const op = "CheckoutService.Checkout"
	log := slog.With("op", op, "cartID", cartID)

	if err := validateCheckout(customer, address); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}
	cart.CartID = cartID
	if cart.ItemCount() == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	order := domain.NewOrder(
		s.newID(), cart, customer, address, payment, s.now(),
	)

	if s.producer != nil {
		if err := s.producer.ProduceOrder(ctx, order); err != nil {
			log.Error("produce order event", "orderID", order.OrderID, "err", err)
		}
	}
	if s.archiver != nil {
		if err := s.archiver.ArchiveOrder(ctx, order); err != nil {
			log.Error("archive order", "orderID", order.OrderID, "err", err)
		}
	}

	cart.Clear()
	if err := s.store.Save(ctx, cart); err != nil {
		log.Error("clear cart after checkout", "err", err)
	}

	return order, nil
}

func validateCheckout(c domain.Customer, a domain.Address) error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("customer name is required"))
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		errs = append(errs, errors.New("valid customer email is required"))
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, errors.New("customer phone is required"))
	}

	required := map[string]string{
		"street":      a.Street,
		"number":      a.Number,
		"district":    a.District,
		"city":        a.City,
		"state":       a.State,
		"postal code": a.PostalCode,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("address %s is required", field))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCheckout, errors.Join(errs...))
	}
	return nil
}
