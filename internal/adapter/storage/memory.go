package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var _ port.CartStore = (*MemoryCartStore)(nil)

// MemoryCartStore keeps cart snapshots in process memory. Used when the
// storefront runs without a database, and in tests.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]domain.Cart)}
}

func (s *MemoryCartStore) Load(
	ctx context.Context, cartID string,
) (domain.Cart, error) {
	const op = "MemoryCartStore.Load"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return cloneCart(cart), nil
}

func (s *MemoryCartStore) Save(ctx context.Context, cart domain.Cart) error {
	const op = "MemoryCartStore.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.CartID] = cloneCart(cart)
	return nil
}

// cloneCart detaches the stored value from the caller's slices.
func cloneCart(c domain.Cart) domain.Cart {
	out := c
	out.Items = append([]domain.CartItem(nil), c.Items...)
	if c.Shipping != nil {
		quote := *c.Shipping
		out.Shipping = &quote
	}
	return out
}
