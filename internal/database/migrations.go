package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createKVStoreTable,
		createKVStoreUpdatedIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}

const createKVStoreTable = `
CREATE TABLE IF NOT EXISTS kv_store (
    key        VARCHAR(255) PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);`

const createKVStoreUpdatedIndex = `
CREATE INDEX IF NOT EXISTS idx_kv_store_updated_at ON kv_store(updated_at);`
