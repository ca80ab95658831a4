package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var _ port.CartStore = (*CartsRepository)(nil)

// CartsRepository persists one JSON snapshot per cart. A snapshot that no
// longer unmarshals is treated as absent, so a schema drift can never lock
// a customer out of their cart.
type CartsRepository struct {
	sqldb sqldb
}

func NewCartsRepository(sqldb sqldb) CartsRepository {
	return CartsRepository{sqldb}
}

func (r CartsRepository) Load(
	ctx context.Context, cartID string,
) (domain.Cart, error) {
	const op = "CartsRepository.Load"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT snapshot FROM carts WHERE cart_id = $1;`

	var snapshot []byte
	err := r.sqldb.QueryRowContext(ctx, query, cartID).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cartFromSnapshot(cartID, snapshot), nil
}

// cartFromSnapshot decodes a stored snapshot. A payload that no longer
// unmarshals resets to an empty cart instead of failing the load.
func cartFromSnapshot(cartID string, snapshot []byte) domain.Cart {
	const op = "CartsRepository.Load"

	var cart domain.Cart
	if err := json.Unmarshal(snapshot, &cart); err != nil {
		slog.With("op", op).Warn(
			"corrupt cart snapshot, resetting", "cartID", cartID, "err", err,
		)
		return domain.NewCart(cartID)
	}
	cart.CartID = cartID
	return cart
}

func (r CartsRepository) Save(ctx context.Context, cart domain.Cart) error {
	const op = "CartsRepository.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	snapshot, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO carts (cart_id, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_id) DO UPDATE SET
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.sqldb.ExecContext(ctx, query, cart.CartID, snapshot); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
