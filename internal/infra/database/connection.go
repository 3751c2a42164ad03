package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewDBConnection abre a conexão com pool e testa o Ping
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS subscription_requests (
	id               UUID PRIMARY KEY,
	name             TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL,
	plan_id          TEXT NOT NULL,
	plan_kind        TEXT NOT NULL,
	selected_plan_id TEXT NULL,
	plan_name        TEXT NOT NULL,
	plan_amount      DOUBLE PRECISION NOT NULL,
	plan_currency    TEXT NOT NULL,
	plan_period      TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'pending',
	submitted_at     TIMESTAMPTZ NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS subscription_requests_submitted_at_idx ON subscription_requests (submitted_at DESC);
`

// EnsureSchema cria a tabela de leads se ela não existir.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
