package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag        = "db-dsn"
	migrationsFlag = "migrations-path"
	dsnEnvName     = "STOREFRONT_DB_DSN"
)

func main() {
	dsn, migrationsPath := parseFlags()
	if dsn == "" {
		slog.Error(fmt.Sprintf(
			"database DSN required: --%s flag or %s env", dsnFlag, dsnEnvName,
		))
		os.Exit(2)
	}

	if err := applyMigrations(dsn, migrationsPath); err != nil {
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}
}

func parseFlags() (dsn, migrationsPath string) {
	d := pflag.StringP(
		dsnFlag, "d", os.Getenv(dsnEnvName),
		"postgres DSN in user:password@host:port/db form",
	)
	m := pflag.StringP(migrationsFlag, "m", "migrations", "migration files dir")
	pflag.Parse()
	return *d, *m
}

type migrationLogger struct {
	logger *slog.Logger
}

func (ml migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml migrationLogger) Verbose() bool {
	return true
}

func applyMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", dsn),
	)
	if err != nil {
		return err
	}
	m.Log = migrationLogger{slog.Default()}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return nil
		}
		return err
	}
	m.Log.Printf("migrations applied")
	return nil
}
