package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

// DisplayCache stores rendered public product projections keyed by slug.
type DisplayCache interface {
	Get(ctx context.Context, slug string) ([]byte, bool, error)
	Set(ctx context.Context, slug string, payload []byte) error
	Invalidate(ctx context.Context, slugs ...string) error
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

type redisDisplayCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisDisplayCache(log *logger.Logger, cfg RedisConfig) (DisplayCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "catalog:display:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisDisplayCache{
		log:    log.With("service", "RedisDisplayCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (c *redisDisplayCache) key(slug string) string { return c.prefix + slug }

func (c *redisDisplayCache) Get(ctx context.Context, slug string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(slug)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *redisDisplayCache) Set(ctx context.Context, slug string, payload []byte) error {
	return c.rdb.Set(ctx, c.key(slug), payload, c.ttl).Err()
}

func (c *redisDisplayCache) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, c.key(s))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisDisplayCache) Close() error { return c.rdb.Close() }

type noopDisplayCache struct{}

// NewNoopDisplayCache is used when REDIS_ADDR is not configured.
func NewNoopDisplayCache() DisplayCache { return noopDisplayCache{} }

func (noopDisplayCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopDisplayCache) Set(context.Context, string, []byte) error         { return nil }
func (noopDisplayCache) Invalidate(context.Context, ...string) error       { return nil }
