package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const defaultTimeout = 10 * time.Second

// schema is the only durable state the core owns: one table mapping
// username to password hash, created on first run if absent.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Connect opens the credential database, verifies connectivity with a ping,
// and ensures the schema exists. A default timeout is applied when none is
// provided.
func Connect(ctx context.Context, dsn string, timeout time.Duration) (*sql.DB, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if _, err := db.ExecContext(pingCtx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres create schema: %w", err)
	}

	return db, nil
}
