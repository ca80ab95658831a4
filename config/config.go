package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type consumers struct {
	CatalogSaverGroup string `mapstructure:"catalog_saver_group"`
	PromoFlagGroup    string `mapstructure:"promo_flag_group"`
}

type topics struct {
	OrderPlaced     string `mapstructure:"order_placed"`
	CatalogUpserts  string `mapstructure:"catalog_upserts"`
	PromoFlagStream string `mapstructure:"promo_flag_stream"`
	PromoFlagTable  string `mapstructure:"promo_flag_table"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type archive struct {
	HDFSAddr string `mapstructure:"hdfs_addr"`
}

type analytics struct {
	SparkAddr string   `mapstructure:"spark_addr"`
	SrcPaths  []string `mapstructure:"src_paths"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	StorePhone     string     `mapstructure:"store_phone"`
	Broker         broker     `mapstructure:"broker"`
	Archive        archive    `mapstructure:"archive"`
	Analytics      analytics  `mapstructure:"analytics"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q
	StorePhone=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		OrderPlaced=%q
		CatalogUpserts=%q
		PromoFlagStream=%q
		PromoFlagTable=%q
	Consumers:
		CatalogSaverGroup=%q
		PromoFlagGroup=%q

	Archive:
	HDFSAddr=%q

	Analytics:
	SparkAddr=%q
	SrcPaths=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.StorePhone,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.OrderPlaced,
		c.Broker.Topics.CatalogUpserts,
		c.Broker.Topics.PromoFlagStream,
		c.Broker.Topics.PromoFlagTable,
		c.Broker.Consumers.CatalogSaverGroup,
		c.Broker.Consumers.PromoFlagGroup,
		c.Archive.HDFSAddr,
		c.Analytics.SparkAddr,
		c.Analytics.SrcPaths,
	)
}
