// Package store defines the key-value persistence contract shared by the
// memory, PostgreSQL and Redis backends.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys under which collections are persisted.
const (
	KeyBookings        = "parkifyBookings"
	KeyAreas           = "parkifyAreas"
	KeyTimeSlots       = "parkifyTimeSlots"
	KeyRegisteredUsers = "parkifyRegisteredUsers"
	KeyUserPrefix      = "parkifyUser:"
)

// SessionKey returns the key of the current-user record for a session.
func SessionKey(sessionID string) string {
	return KeyUserPrefix + sessionID
}

// KV is an opaque key-value store. Load reports found=false for absent keys.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LoadJSON decodes the value at key into dst. It reports false when the key is absent.
func LoadJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, found, err := kv.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it at key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
