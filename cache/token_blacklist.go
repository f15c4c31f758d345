package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedTokenPrefix + hex.EncodeToString(sum[:])
}

// RedisTokenBlacklist keeps revoked tokens until they would have expired anyway.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{Client: client}
}

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return b.Client.Set(ctx, tokenKey(token), "1", ttl).Err()
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.Client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type MemoryTokenBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{tokens: make(map[string]time.Time), now: time.Now}
}

func (b *MemoryTokenBlacklist) Revoke(_ context.Context, token string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[tokenKey(token)] = until
	b.sweep()
	return nil
}

func (b *MemoryTokenBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	expiry, ok := b.tokens[tokenKey(token)]
	return ok && b.now().Before(expiry), nil
}

// sweep drops expired entries; callers hold the write lock.
func (b *MemoryTokenBlacklist) sweep() {
	now := b.now()
	for k, expiry := range b.tokens {
		if !now.Before(expiry) {
			delete(b.tokens, k)
		}
	}
}
