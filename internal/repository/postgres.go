package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/vocab-companion/internal/infra/postgres"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore keeps documents in a kv_store table with JSONB values.
type PostgresStore struct {
	pool *pgxpool.Pool
	tr   *postgres.Transactor
}

// NewPostgresStore creates the kv_store table if it does not exist.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create kv_store table: %w", err)
	}
	return &PostgresStore{pool: pool, tr: postgres.NewTransactor(pool)}, nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	return pgLoad(ctx, s.pool, key, false)
}

func (s *PostgresStore) Save(ctx context.Context, key string, value []byte) error {
	return pgSave(ctx, s.pool, key, value)
}

// Update serializes writers of the same key with a transaction-scoped
// advisory lock, which also covers keys that have no row yet.
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("lock %s: %w", key, err)
		}

		current, err := pgLoad(ctx, tx, key, true)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		return pgSave(ctx, tx, key, next)
	})
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func pgLoad(ctx context.Context, db postgres.DBTX, key string, forUpdate bool) ([]byte, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var value []byte
	err := db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	return value, nil
}

func pgSave(ctx context.Context, db postgres.DBTX, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := db.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
