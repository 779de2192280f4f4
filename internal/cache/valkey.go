package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// ValkeyStore persists collections as plain string values in Valkey/Redis.
type ValkeyStore struct {
	client *redis.Client
	prefix string
}

func NewValkeyStore(cfg Config) (*ValkeyStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return NewValkeyStoreWithClient(rdb, cfg.KeyPrefix), nil
}

func NewValkeyStoreWithClient(client *redis.Client, prefix string) *ValkeyStore {
	return &ValkeyStore{client: client, prefix: prefix}
}

func (v *ValkeyStore) key(k string) string {
	return v.prefix + k
}

func (v *ValkeyStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := v.client.Get(ctx, v.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup error: %w", err)
	}
	return value, true, nil
}

func (v *ValkeyStore) Save(ctx context.Context, key string, value []byte) error {
	if err := v.client.Set(ctx, v.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("cache write error: %w", err)
	}
	return nil
}

func (v *ValkeyStore) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, v.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (v *ValkeyStore) Ping(ctx context.Context) error {
	return v.client.Ping(ctx).Err()
}

func (v *ValkeyStore) Close() error {
	return v.client.Close()
}
