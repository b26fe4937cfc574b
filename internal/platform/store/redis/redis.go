// Package redis wraps go-redis as a byte oriented key value client
package redis

import (
	"context"
	"time"

	perr "tglang/internal/platform/errors"

	goredis "github.com/redis/go-redis/v9"
)

// Config configures the client
type Config struct {
	// URL is a redis:// or rediss:// URL, e.g. redis://localhost:6379/0
	URL        string
	ClientName string
}

// Client is a small KV surface over a go-redis client
type Client struct {
	rdb goredis.UniversalClient
}

// Open parses the URL; the connection is established on first use
func Open(cfg Config) (*Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.ClientName != "" {
		opts.ClientName = cfg.ClientName
	}
	return New(goredis.NewClient(opts)), nil
}

// New wraps an existing client
func New(rdb goredis.UniversalClient) *Client { return &Client{rdb: rdb} }

// Get returns the stored bytes; a missing key is perr NotFound
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, perr.FromRedis(err, "redis get")
	}
	return b, nil
}

// Set stores val; ttl <= 0 keeps the key forever
func (c *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return perr.FromRedis(c.rdb.Set(ctx, key, val, ttl).Err(), "redis set")
}

// Ping round trips to the server
func (c *Client) Ping(ctx context.Context) error {
	return perr.FromRedis(c.rdb.Ping(ctx).Err(), "redis ping")
}

// Close releases the pool
func (c *Client) Close() error { return c.rdb.Close() }
