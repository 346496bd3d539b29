// Package dbtest connects repository tests to a disposable Postgres database.
// Tests are skipped unless DB_HOST_TEST is set.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/config"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Connect opens a pool against the test database and applies the schema.
// It returns a nil pool when DB_HOST_TEST is not set.
func Connect() (*pgxpool.Pool, error) {
	host := os.Getenv("DB_HOST_TEST")
	if host == "" {
		return nil, nil
	}

	cfg := config.PostgresConfig{
		Host:            host,
		Port:            envOr("DB_PORT_TEST", "5432"),
		User:            envOr("DB_USER_TEST", "postgres"),
		Password:        envOr("DB_PASSWORD_TEST", "postgres"),
		DBName:          envOr("DB_NAME_TEST", "restaurant_test"),
		SSLMode:         envOr("DB_SSLMODE_TEST", "disable"),
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pg.ApplyMigrations(); err != nil {
		pg.Close()
		return nil, err
	}

	return pg.Pool, nil
}

// Require skips tb when no test database is configured.
func Require(tb testing.TB, pool *pgxpool.Pool) {
	tb.Helper()
	if pool == nil {
		tb.Skip("DB_HOST_TEST not set, skipping repository test")
	}
}

// Truncate empties every table and resets identities.
func Truncate(tb testing.TB, pool *pgxpool.Pool) {
	tb.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE TABLE reviews, order_items, orders, chefs, waiters, dining_tables, customers, dishes
		RESTART IDENTITY CASCADE
	`)
	require.NoError(tb, err, "failed to truncate tables")
}
