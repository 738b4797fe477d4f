package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	maxRetries    = 10
	retryInterval = 5 * time.Second
)

// Connect opens the Postgres pool and verifies it with a ping, retrying a few
// times so the service survives the database coming up after it does.
func Connect(databaseURL string, log *zap.SugaredLogger) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		conn, err := sqlx.Connect("postgres", databaseURL)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		log.Warnw("database connect failed, retrying",
			"attempt", i+1, "max", maxRetries, "error", err)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("connect after %d attempts: %w", maxRetries, lastErr)
}

// EnsureSchema applies the idempotent DDL so a fresh database is usable
// without a separate migration step.
func EnsureSchema(conn *sqlx.DB) error {
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
