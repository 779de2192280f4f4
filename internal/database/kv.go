package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KVStore keeps each collection as one JSONB row in kv_store.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.ExecWithRetry(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx,
			`SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	err := s.db.ExecWithRetry(ctx, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	err := s.db.ExecWithRetry(ctx, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	hc := s.db.HealthCheck(ctx)
	if hc.Status != "healthy" {
		return fmt.Errorf("database unhealthy: %s", hc.Error)
	}
	return nil
}
