package analytics

import (
	"context"
	"log/slog"

	"github.com/apache/spark-connect-go/v35/spark/sql"

	"github.com/finaestampa/storefront/internal/core/domain"
)

// OrderStatsAnalyzer counts archived orders per customer file through a
// Spark Connect session. Each source path is one customer's order log.
type OrderStatsAnalyzer struct {
	addr string
}

func NewOrderStatsAnalyzer(addr string) OrderStatsAnalyzer {
	return OrderStatsAnalyzer{addr}
}

func (a OrderStatsAnalyzer) Do(
	ctx context.Context, srcPaths []string,
) <-chan domain.CustomerOrderStats {
	c := make(chan domain.CustomerOrderStats, 1)
	go a.do(ctx, c, srcPaths)
	return c
}

func (a OrderStatsAnalyzer) do(
	ctx context.Context, stream chan<- domain.CustomerOrderStats, srcPaths []string,
) {
	const op = "OrderStatsAnalyzer.do"
	log := slog.With("op", op)

	// The stream must close on every path, or a ranging consumer
	// never unblocks.
	defer close(stream)

	if err := ctx.Err(); err != nil {
		return
	}

	s, err := sql.NewSessionBuilder().Remote(a.addr).Build(ctx)
	if err != nil {
		log.Error("failed to build session", "err", err)
		return
	}

	defer a.stop(s)

	for _, src := range srcPaths {
		df, err := s.Read().Format("json").Load(src)
		if err != nil {
			log.Error("failed to read source", "src", src)
			return
		}

		nOrders, err := df.Count(ctx)
		if err != nil {
			log.Error("failed to count dataframe rows", "err", err)
			return
		}

		row, err := df.First(ctx)
		if err != nil {
			log.Error("failed to get first row", "err", err)
			return
		}

		phone, ok := row.Value("customer_phone").(string)
		if !ok {
			log.Error("failed to assert customer_phone type: not string")
			return
		}

		stream <- domain.CustomerOrderStats{
			Phone:  phone,
			Orders: int(nOrders),
		}
	}
}

func (a OrderStatsAnalyzer) stop(s sql.SparkSession) {
	const op = "OrderStatsAnalyzer.stop"
	log := slog.With("op", op)
	if err := s.Stop(); err != nil {
		log.Error("failed to stop session", "err", err)
	}
}
