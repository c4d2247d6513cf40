package rediskv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kasuganosora/memorybox/kv"
	goredis "github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	// MaxValueBytes rejects single values above this size. Zero means no
	// client-side limit; the server's maxmemory policy still applies.
	MaxValueBytes int64
}

// RedisStore implements kv.Store backed by Redis. Slots never expire.
type RedisStore struct {
	client   *goredis.Client
	maxValue int64
}

// NewStore connects to Redis and verifies the connection with PING.
func NewStore(cfg Config) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client, maxValue: cfg.MaxValueBytes}, nil
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", kv.ErrNotFound
	}
	return v, err
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if r.maxValue > 0 && int64(len(value)) > r.maxValue {
		return kv.ErrQuotaExceeded
	}
	err := r.client.Set(ctx, key, value, 0).Err()
	if isOOM(err) {
		return kv.ErrQuotaExceeded
	}
	return err
}

func (r *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	return n > 0, err
}

// isOOM matches the reply Redis sends when maxmemory is reached under a
// noeviction policy.
func isOOM(err error) bool {
	var rerr goredis.Error
	if err == nil || !errors.As(err, &rerr) {
		return false
	}
	return strings.HasPrefix(rerr.Error(), "OOM ")
}
