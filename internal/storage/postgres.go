package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by a single key-value table:
//
//	CREATE TABLE IF NOT EXISTS kv_store (key TEXT PRIMARY KEY, value BYTEA NOT NULL)
func NewPostgresStore(db *pgxpool.Pool) Store {
	return &postgresStore{
		db: db,
	}
}

func (s *postgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load key %s: %w", key, err)
	}

	return value, nil
}

func (s *postgresStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO kv_store (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key)
	DO UPDATE SET value = $2`
	_, err := s.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
