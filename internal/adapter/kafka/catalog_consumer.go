package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
	"github.com/finaestampa/storefront/pkg/schema"
)

var _ port.CatalogConsumer = (*Consumer)(nil)

type ConsumerOpt func(*consumerOpts) error

func ConsumerClientOpt(cl ConsumerClient) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if cl != nil {
			opts.cl = cl
			return nil
		}
		return errors.New("consumer client is nil")
	}
}

func ConsumerCatalogEditorOpt(e port.CatalogEditor) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if e != nil {
			opts.editor = e
			return nil
		}
		return errors.New("consumer catalog editor is nil")
	}
}

func ConsumerDecodeFnOpt(decodeFn func([]byte, any) error) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if decodeFn != nil {
			opts.decodeFn = decodeFn
			return nil
		}
		return errors.New("consumer decode func is nil")
	}
}

type consumerOpts struct {
	cl       ConsumerClient
	editor   port.CatalogEditor
	decodeFn func([]byte, any) error
}

// Consumer polls catalog upsert events and writes them through the
// catalog editor, so the storefront follows the back office feed.
type Consumer struct {
	cl       ConsumerClient
	editor   port.CatalogEditor
	decodeFn func([]byte, any) error
	errTimer *time.Timer
}

func NewConsumer(opts ...ConsumerOpt) Consumer {
	const op = "NewConsumer"

	if len(opts) == 0 {
		panic(fmt.Errorf("%s: options not set", op)) // develop mistake
	}

	var options consumerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(err) // develop mistake
		}
	}

	return Consumer{
		cl:       options.cl,
		editor:   options.editor,
		decodeFn: options.decodeFn,
		errTimer: time.NewTimer(0),
	}
}

func (c Consumer) Close() {
	const op = "Consumer.Close"
	log := slog.With("op", op)

	log.Info("closing consumer...")
	c.errTimer.Stop()
	c.cl.Close()
	log.Info("consumer is closed")
}

func (c Consumer) Run(ctx context.Context) {
	const op = "Consumer.Run"
	log := slog.With("op", op)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info("context canceled")
					continue
				}
				err = fmt.Errorf("%s: %w", op, err)
				log.Error("failed to consume messages", "err", err)
				c.slowDown()
			}
			err = c.commit(ctx)
			if err != nil {
				log.Error("failed to commit offset", "err", err)
			}
		}
	}
}

func (c Consumer) commit(ctx context.Context) error {
	const op = "Consumer.commit"
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Consumer) consume(ctx context.Context) error {
	const op = "Consumer.consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if fetches.Empty() {
		return nil
	}

	ps := c.toProducts(fetches)
	if err := c.editor.SaveProducts(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "Consumer.pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err := c.handleErrs(fetches)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return fetches, nil
}

func (c Consumer) handleErrs(fetches kgo.Fetches) error {
	var errsData []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errData := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsData = append(errsData, errData)
		}
	})

	if len(errsData) != 0 {
		return errors.New(strings.Join(errsData, "; "))
	}
	return nil
}

// toProducts decodes each record, skipping the ones that fail so one bad
// event never stalls the feed.
func (c Consumer) toProducts(fetches kgo.Fetches) (ps []domain.Product) {
	const op = "Consumer.toProducts"
	log := slog.With("op", op)

	fetches.EachRecord(func(r *kgo.Record) {
		var s schema.CatalogUpsertV1
		if err := c.decodeFn(r.Value, &s); err != nil {
			err = fmt.Errorf("%s: %w", op, err)
			log.Error("failed to unmarshal value", "err", err)
			return
		}

		p, err := catalogUpsertToDomain(s)
		if err != nil {
			err = fmt.Errorf("%s: %w", op, err)
			log.Error("failed to map product", "err", err)
			return
		}
		ps = append(ps, p)
	})
	return ps
}

func (c Consumer) slowDown() {
	const timeout = 1 * time.Second
	c.errTimer.Reset(timeout)
	<-c.errTimer.C
}
