package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TagRegistry decides whether a notification tag may be displayed.
// AcquireOnce returns true the first time a tag is seen within the
// visibility window and false while a notification with that tag is
// considered visible.
type TagRegistry interface {
	AcquireOnce(ctx context.Context, tag string) bool
}

// RedisTagRegistry backs the dedupe contract with a SetNX lock per tag.
type RedisTagRegistry struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisTagRegistry(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTagRegistry {
	return &RedisTagRegistry{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisTagRegistry) AcquireOnce(ctx context.Context, tag string) bool {
	key := fmt.Sprintf("goalgrid:notify:%s", tag)

	ok, err := r.rdb.SetNX(ctx, key, 1, r.ttl).Result()
	if err != nil {
		// When redis is unavailable, displaying twice beats never
		// displaying: allow the notification.
		if r.logger != nil {
			r.logger.Warn("Redis dedupe check failed, allowing notification",
				zap.String("tag", tag),
				zap.Error(err),
			)
		}
		return true
	}

	if !ok && r.logger != nil {
		r.logger.Info("Skipped duplicate notification",
			zap.String("tag", tag),
			zap.String("dedup_key", key),
		)
	}

	return ok
}
