package main

import (
	"fmt"

	"github.com/finaestampa/storefront/config"
	"github.com/finaestampa/storefront/internal/adapter/analytics"
	"github.com/finaestampa/storefront/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	analyzer := analytics.NewOrderStatsAnalyzer(cfg.Analytics.SparkAddr)

	fmt.Println("orders per customer:")
	for stats := range analyzer.Do(sigCtx, cfg.Analytics.SrcPaths) {
		fmt.Printf("\t%s: %d\n", stats.Phone, stats.Orders)
	}
}
