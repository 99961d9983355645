// Package cache keeps short-lived JSON read models in Redis and fans out
// change notifications over Redis pub/sub.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb    *redis.Client
	prefix string
}

func New(rdb *redis.Client, prefix string) *Cache {
	return &Cache{rdb: rdb, prefix: prefix}
}

func (c *Cache) key(parts ...string) string {
	k := c.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// GetJSON decodes the value at key into dst. The boolean is false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), b, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Version returns the current generation of a namespace, 0 if never bumped.
func (c *Cache) Version(ctx context.Context, namespace string) (int64, error) {
	v, err := c.rdb.Get(ctx, c.key("version", namespace)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache version %s: %w", namespace, err)
	}
	return v, nil
}

// Bump invalidates every key built from the previous version of namespace.
func (c *Cache) Bump(ctx context.Context, namespace string) (int64, error) {
	v, err := c.rdb.Incr(ctx, c.key("version", namespace)).Result()
	if err != nil {
		return 0, fmt.Errorf("cache bump %s: %w", namespace, err)
	}
	return v, nil
}

func (c *Cache) Publish(ctx context.Context, channel string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", channel, err)
	}
	if err := c.rdb.Publish(ctx, c.key(channel), b).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// Subscribe returns the raw payload stream for channel. The channel closes
// when ctx is done.
func (c *Cache) Subscribe(ctx context.Context, channel string) <-chan []byte {
	sub := c.rdb.Subscribe(ctx, c.key(channel))
	out := make(chan []byte)

	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
