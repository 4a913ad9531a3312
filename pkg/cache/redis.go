package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when no Redis URL is given.
var ErrNotConfigured = errors.New("redis not configured")

const pingTimeout = 2 * time.Second

// RedisClient owns the Redis pool shared by the web binary's session store
// and its /health check.
type RedisClient struct {
	client *redis.Client
}

// Open parses rawURL, sizes the pool for a single web process and verifies
// the server answers PING before returning.
func Open(ctx context.Context, rawURL string) (*RedisClient, error) {
	if rawURL == "" {
		return nil, ErrNotConfigured
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	tune(opts)

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// tune applies pool limits and timeouts. Session reads sit on the page
// request path, so commands fail fast rather than queueing.
func tune(opts *redis.Options) {
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second
}

// Ping reports whether Redis is reachable.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool to the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
