package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/colinmarc/hdfs/v2"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
	"github.com/finaestampa/storefront/pkg/retry"
)

var _ port.OrderArchiver = (*OrderArchiveRepository)(nil)

type hdfsStorage interface {
	Append(name string) (*hdfs.FileWriter, error)
	Create(name string) (*hdfs.FileWriter, error)
}

type (
	archivedOrder struct {
		OrderID       string              `json:"order_id"`
		CartID        string              `json:"cart_id"`
		CustomerName  string              `json:"customer_name"`
		CustomerPhone string              `json:"customer_phone"`
		City          string              `json:"city"`
		State         string              `json:"state"`
		PaymentMethod string              `json:"payment_method"`
		Items         []archivedOrderItem `json:"items"`
		Subtotal      string              `json:"subtotal"`
		Discount      string              `json:"discount"`
		Shipping      string              `json:"shipping"`
		Total         string              `json:"total"`
		PlacedAt      time.Time           `json:"placed_at"`
	}

	archivedOrderItem struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
	}
)

// OrderArchiveRepository appends placed orders to one HDFS file per
// customer phone, a line of JSON per order.
type OrderArchiveRepository struct {
	hdfs hdfsStorage
}

func NewOrderArchiveRepository(hdfs hdfsStorage) OrderArchiveRepository {
	return OrderArchiveRepository{hdfs}
}

func (r OrderArchiveRepository) ArchiveOrder(
	ctx context.Context, order domain.Order,
) error {
	const op = "OrderArchiveRepository.ArchiveOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w, err := r.createWriter(r.getFileName(order.Customer.Phone))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := json.NewEncoder(w).Encode(r.toArchivedOrder(order)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.closeWriter(ctx, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r OrderArchiveRepository) getFileName(phone string) string {
	return "/orders/" + phone
}

func (r OrderArchiveRepository) createWriter(filepath string) (io.WriteCloser, error) {
	w, err := r.hdfs.Append(filepath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		w, err = r.hdfs.Create(filepath)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (r OrderArchiveRepository) closeWriter(
	ctx context.Context, w io.WriteCloser,
) error {
	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LinearBackoff(50 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, hdfs.ErrReplicating)
		},
	}
	return retry.Do(ctx, retryCfg, w.Close)
}

func (r OrderArchiveRepository) toArchivedOrder(o domain.Order) archivedOrder {
	v := archivedOrder{
		OrderID:       o.OrderID,
		CartID:        o.Cart.CartID,
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		City:          o.Address.City,
		State:         o.Address.State,
		PaymentMethod: o.Payment.Method,
		Subtotal:      o.Totals.Subtotal.StringFixed(2),
		Discount:      o.Totals.Discount.StringFixed(2),
		Shipping:      o.Totals.Shipping.StringFixed(2),
		Total:         o.Totals.Total.StringFixed(2),
		PlacedAt:      o.PlacedAt,
	}
	for _, item := range o.Cart.Items {
		v.Items = append(v.Items, archivedOrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}
	return v
}
