package session

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// TokenHolder is the one piece of cross-component mutable shared state:
// the session token. It is written only by the Store and read by every
// outgoing request through api.TokenSource, so readers always observe the
// latest value.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

// TokenVault is durable storage for the single token slot. An empty
// string from Load means logged out.
type TokenVault interface {
	Load(ctx context.Context) (string, error)
	Store(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

const tokenKey = "goalgrid:session:token"

// RedisVault persists the token slot in redis.
type RedisVault struct {
	rdb *redis.Client
}

func NewRedisVault(rdb *redis.Client) *RedisVault {
	return &RedisVault{rdb: rdb}
}

func (v *RedisVault) Load(ctx context.Context) (string, error) {
	token, err := v.rdb.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (v *RedisVault) Store(ctx context.Context, token string) error {
	return v.rdb.Set(ctx, tokenKey, token, 0).Err()
}

func (v *RedisVault) Clear(ctx context.Context) error {
	return v.rdb.Del(ctx, tokenKey).Err()
}
