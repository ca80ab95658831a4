package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var _ port.OrderProducer = (*OrderProducer)(nil)

type OrderProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewOrderProducer(opts ...ProducerOpt) (OrderProducer, error) {
	const op = "NewOrderProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: too few options", op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrderProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return OrderProducer{options.cl, options.encoder}, nil
}

func (p OrderProducer) Close() {
	const op = "OrderProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p OrderProducer) ProduceOrder(
	ctx context.Context, order domain.Order,
) error {
	const op = "OrderProducer.ProduceOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p OrderProducer) createRecord(order domain.Order) (*kgo.Record, error) {
	const op = "OrderProducer.createRecord"

	s := orderToSchemaV1(order)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &kgo.Record{Key: []byte(s.OrderID), Value: v}, nil
}
