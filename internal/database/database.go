package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"portfolio-api/internal/config"
)

var sqlOpen = sql.Open

// ValidateDSN checks that the connection string uses one of the two accepted
// URI schemes.
func ValidateDSN(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("database url is required")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return fmt.Errorf("database url must use the postgres:// or postgresql:// scheme")
	}
	return nil
}

// Open opens a database/sql connection through the otelsql-wrapped pgx stdlib
// driver, applies pooling settings, and verifies connectivity once with a
// short timeout.
func Open(c config.DatabaseConfig) (*sql.DB, error) {
	if err := ValidateDSN(c.URL); err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, c.URL)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

// Connect retries Open forever with a fixed backoff, logging each failure.
// An outage at startup delays readiness rather than crashing the process; the
// loop exits only on success or context cancellation. A malformed URL is not
// retryable and fails immediately.
func Connect(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	if err := ValidateDSN(c.URL); err != nil {
		return nil, err
	}

	backoff := time.Duration(c.RetryBackoffSec) * time.Second
	if backoff <= 0 {
		backoff = 5 * time.Second
	}

	for {
		db, err := Open(c)
		if err == nil {
			return db, nil
		}

		logConnectFailure(err, backoff)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func logConnectFailure(err error, backoff time.Duration) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "error",
		"component": "database",
		"event":     "db_connect_failed",
		"error":     err.Error(),
		"retry_in":  backoff.String(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
