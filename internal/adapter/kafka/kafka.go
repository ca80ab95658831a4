package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/pkg/schema"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNoLogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(o domain.Order) (s schema.OrderPlacedV1) {
	s.OrderID = o.OrderID
	s.CartID = o.Cart.CartID
	s.CustomerName = o.Customer.Name
	s.CustomerEmail = o.Customer.Email
	s.CustomerPhone = o.Customer.Phone
	s.City = o.Address.City
	s.State = o.Address.State
	s.PostalCode = o.Address.PostalCode
	s.PaymentMethod = o.Payment.Method
	s.Installments = o.Payment.Installments
	s.ItemCount = int64(o.Totals.ItemCount)
	s.Subtotal = o.Totals.Subtotal.StringFixed(2)
	s.Discount = o.Totals.Discount.StringFixed(2)
	s.Shipping = o.Totals.Shipping.StringFixed(2)
	s.Total = o.Totals.Total.StringFixed(2)
	s.PlacedAtMs = o.PlacedAt.UnixMilli()
	return
}

func catalogUpsertToDomain(s schema.CatalogUpsertV1) (domain.Product, error) {
	const op = "catalogUpsertToDomain"

	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return domain.Product{}, opErr(err, op)
	}

	salePrice := decimal.Zero
	if s.SalePrice != "" {
		salePrice, err = decimal.NewFromString(s.SalePrice)
		if err != nil {
			return domain.Product{}, opErr(err, op)
		}
	}

	return domain.Product{
		ProductID:   s.ProductID,
		Name:        s.Name,
		Category:    s.Category,
		Gender:      s.Gender,
		Subcategory: s.Subcategory,
		Brand:       s.Brand,
		Material:    s.Material,
		Price:       price,
		SalePrice:   salePrice,
		Rating:      s.Rating,
		ReviewCount: int(s.ReviewCount),
		Sizes:       s.Sizes,
		Colors:      s.Colors,
		Image:       s.Image,
		IsNew:       s.IsNew,
		IsPromo:     s.IsPromo,
		InStock:     s.InStock,
		FreeShip:    s.FreeShip,
	}, nil
}
