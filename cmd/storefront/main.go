package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/colinmarc/hdfs/v2"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sr"

	"github.com/finaestampa/storefront/config"
	"github.com/finaestampa/storefront/internal/adapter/httphandler"
	"github.com/finaestampa/storefront/internal/adapter/kafka"
	"github.com/finaestampa/storefront/internal/adapter/storage"
	"github.com/finaestampa/storefront/internal/core/port"
	"github.com/finaestampa/storefront/internal/core/service"
	"github.com/finaestampa/storefront/pkg/schema"
	"github.com/finaestampa/storefront/pkg/sigctx"
)

const closeTimeout = 10 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	initLogger(cfg.LogLevel)
	slog.Info("storefront is running")

	db := createSQLDB(sigCtx, cfg.SQLDB)
	defer db.Close()

	productsRepo := storage.NewProductsRepository(db)
	cartsRepo := storage.NewCartsRepository(db)

	catalogSvc := service.NewCatalogService(productsRepo)
	cartSvc := service.NewCartService(cartsRepo)

	schemaCreater := createSchemaCreater(cfg.Broker.SchemaRegistryURLs)

	orderSerde := createSerde(
		sigCtx, cfg.Broker.Topics.OrderPlaced,
		schemaCreater, schema.NewSerdeOrderPlacedV1,
	)
	catalogSerde := createSerde(
		sigCtx, cfg.Broker.Topics.CatalogUpserts,
		schemaCreater, schema.NewSerdeCatalogUpsertV1,
	)
	promoSerde := createSerde(
		sigCtx, cfg.Broker.Topics.PromoFlagStream,
		schemaCreater, schema.NewSerdePromoFlagV1,
	)

	orderProducer := createOrderProducer(
		sigCtx, cfg.Broker.SeedBrokers, cfg.Broker.Topics.OrderPlaced, orderSerde,
	)
	defer orderProducer.Close()

	orderArchiver := createOrderArchiver(cfg.Archive.HDFSAddr)

	checkoutSvc := service.NewCheckoutService(cartsRepo, orderProducer, orderArchiver)

	catalogConsumer := createCatalogConsumer(cfg, catalogSvc, catalogSerde)
	defer catalogConsumer.Close()
	go catalogConsumer.Run(sigCtx)

	promoProc := createPromoProc(cfg, promoSerde)
	defer promoProc.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go promoProc.Run(sigCtx, &wg)
	wg.Wait()

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, catalogSvc)
	httphandler.RegisterAdminCatalog(mux, catalogSvc)
	httphandler.RegisterCart(mux, cartSvc)
	httphandler.RegisterCheckout(mux, checkoutSvc, cfg.StorePhone)

	httpServer := httphandler.NewHTTPServer(
		cfg.HTTPServerAddr, httphandler.AllowJSON(mux),
	)
	go httpServer.Run(closeApp)

	<-sigCtx.Done()
	slog.Info("storefront is closing...")

	shutdownCtx, cancelTimeout := context.WithTimeout(
		context.Background(), closeTimeout,
	)
	defer cancelTimeout()

	httpServer.Close(shutdownCtx)
	slog.Info("storefront is closed")
}

func initLogger(level slog.Leveler) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func createSQLDB(ctx context.Context, dsn string) storage.SQLDB {
	const op = "main.createSQLDB"

	db, err := storage.NewSQLDB(ctx, dsn)
	if err != nil {
		die(op, err)
	}
	return db
}

func createSchemaCreater(urls []string) schema.SchemaCreater {
	const op = "main.createSchemaCreater"

	cl, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		die(op, err)
	}
	return schema.NewSchemaCreater(cl)
}

func createSerde(
	ctx context.Context,
	topic string,
	si schema.SchemaIdentifier,
	newFn func(context.Context, ...schema.Opt) (schema.Serde, error),
) schema.Serde {
	const op = "main.createSerde"

	s, err := newFn(
		ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(si),
	)
	if err != nil {
		die(op, err)
	}
	return s
}

func createOrderProducer(
	ctx context.Context,
	seedBrokers []string,
	topic string,
	encoder kafka.Encoder,
) kafka.OrderProducer {
	const op = "main.createOrderProducer"

	p, err := kafka.NewOrderProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topic),
		kafka.ProducerEncoderOpt(encoder),
	)
	if err != nil {
		die(op, err)
	}
	return p
}

func createOrderArchiver(addr string) port.OrderArchiver {
	const op = "main.createOrderArchiver"

	cl, err := hdfs.New(addr)
	if err != nil {
		die(op, err)
	}
	return storage.NewOrderArchiveRepository(cl)
}

func createCatalogConsumer(
	cfg config.Config, editor port.CatalogEditor, serde schema.Serde,
) kafka.Consumer {
	const op = "main.createCatalogConsumer"

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Broker.SeedBrokers...),
		kgo.ConsumeTopics(cfg.Broker.Topics.CatalogUpserts),
		kgo.ConsumerGroup(cfg.Broker.Consumers.CatalogSaverGroup),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		die(op, err)
	}

	return kafka.NewConsumer(
		kafka.ConsumerClientOpt(cl),
		kafka.ConsumerCatalogEditorOpt(editor),
		kafka.ConsumerDecodeFnOpt(serde.Decode),
	)
}

func createPromoProc(
	cfg config.Config, serde schema.Serde,
) kafka.PromoFlagProcessor {
	const op = "main.createPromoProc"

	p, err := kafka.NewPromoFlagProc(
		cfg.Broker.SeedBrokers,
		cfg.Broker.Topics.PromoFlagStream,
		cfg.Broker.Consumers.PromoFlagGroup,
		serde,
	)
	if err != nil {
		die(op, err)
	}
	return p
}

func die(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
