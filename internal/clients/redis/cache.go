package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/marcusvane/insightdash-backend/internal/logger"
)

// Cache is a read-through JSON cache for aggregation results. It is
// optional: when REDIS_ADDR is unset the app runs without it.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Invalidate(ctx context.Context, prefix string) error
	Close() error
}

type cache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewCache(log *logger.Logger) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "insightdash"
	}

	ttl := 5 * time.Minute
	if v := strings.TrimSpace(os.Getenv("REDIS_TTL_SECONDS")); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
			ttl = d
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cache{
		log:    log.With("service", "RedisCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (c *cache) key(k string) string { return c.prefix + ":" + k }

func (c *cache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, fmt.Errorf("redis cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A corrupt entry is treated as a miss so the caller recomputes.
		c.log.Warn("Cache entry decode failed", "key", key, "error", err.Error())
		return false, nil
	}
	return true, nil
}

func (c *cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis cache not initialized")
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *cache) Invalidate(ctx context.Context, prefix string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis cache not initialized")
	}
	iter := c.rdb.Scan(ctx, 0, c.key(prefix)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
