// Package redis wraps go-redis for pub/sub publishing.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client publishes messages on Redis channels.
type Client struct {
	client *redis.Client
}

// New connects and pings Redis.
func New(opts ...Option) (*Client, error) {
	cfg := &Config{
		Host:        "localhost",
		Port:        6379,
		PoolSize:    10,
		DialTimeout: 5 * time.Second,
		PingTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{client: client}, nil
}

// Publish sends value on channel, JSON-encoded unless it is already bytes or a string.
// It returns the number of subscribers that received it.
func (c *Client) Publish(ctx context.Context, channel string, value interface{}) (int64, error) {
	var data interface{}
	switch v := value.(type) {
	case string, []byte:
		data = v
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return 0, fmt.Errorf("marshal value: %w", err)
		}
		data = b
	}

	n, err := c.client.Publish(ctx, channel, data).Result()
	if err != nil {
		return 0, fmt.Errorf("publish to %s: %w", channel, err)
	}
	return n, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
