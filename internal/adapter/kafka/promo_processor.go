package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"

	"github.com/finaestampa/storefront/internal/core/port"
	"github.com/finaestampa/storefront/pkg/schema"
)

var _ port.PromoFlagProcessor = (*PromoFlagProcessor)(nil)

// A promoEventCodec used for serde [schema.PromoFlagV1]
type promoEventCodec struct {
	serde Serde
}

func newPromoEventCodec(s Serde) promoEventCodec {
	return promoEventCodec{s}
}

func (c promoEventCodec) Encode(v any) ([]byte, error) {
	const op = "promoEventCodec.Encode"
	if _, ok := v.(schema.PromoFlagV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c promoEventCodec) Decode(data []byte) (any, error) {
	const op = "promoEventCodec.Decode"
	var s schema.PromoFlagV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A saleValue represents the on-sale state for a particular product.
type saleValue bool

// A saleValueCodec used for serde [saleValue]
type saleValueCodec struct{}

func (saleValueCodec) Encode(v any) ([]byte, error) {
	const op = "saleValueCodec.Encode"
	sv, ok := v.(saleValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendBool([]byte(nil), bool(sv))
	return data, nil
}

func (saleValueCodec) Decode(data []byte) (any, error) {
	const op = "saleValueCodec.Decode"
	sv, err := strconv.ParseBool(string(data))
	if err != nil {
		return nil, opErr(err, op)
	}
	return saleValue(sv), nil
}

// A PromoFlagProcessor folds promo flag events from the stream topic
// into a group table keyed by product ID.
type PromoFlagProcessor struct {
	gp *goka.Processor
}

func NewPromoFlagProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	promoFlagSerde Serde,
) (PromoFlagProcessor, error) {
	const op = "NewPromoFlagProcessor"

	var p PromoFlagProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newPromoEventCodec(promoFlagSerde),
			p.processFn,
		),
		goka.Persist(saleValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return PromoFlagProcessor{}, opErr(err, op)
	}

	return PromoFlagProcessor{gp}, nil
}

func (p PromoFlagProcessor) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "PromoFlagProcessor.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go p.run(ctx)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p PromoFlagProcessor) Close() {
	const op = "PromoFlagProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p PromoFlagProcessor) run(ctx context.Context) {
	const op = "PromoFlagProcessor.run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p PromoFlagProcessor) waitForReady(ctx context.Context) {
	const op = "PromoFlagProcessor.waitForReady"
	log := slog.With("op", op)

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (PromoFlagProcessor) processFn(ctx goka.Context, msg any) {
	const op = "PromoFlagProcessor.processFn"
	log := slog.With("op", op)

	event, _ := msg.(schema.PromoFlagV1)
	v := saleValue(event.OnSale)
	ctx.SetValue(v)
	log.Info(
		"set promo flag",
		"productID", event.ProductID,
		"onSale", v,
	)
}
