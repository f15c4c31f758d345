package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const slotLockPrefix = "table_slot:"

// releaseScript deletes the key only when it still belongs to the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlotLocker serialises bookings of one table/day across instances.
type RedisSlotLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) *RedisSlotLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisSlotLocker{Client: client, TTL: ttl}
}

func (l *RedisSlotLocker) Lock(ctx context.Context, slot, owner string) (bool, error) {
	return l.Client.SetNX(ctx, slotLockPrefix+slot, owner, l.TTL).Result()
}

func (l *RedisSlotLocker) Unlock(ctx context.Context, slot, owner string) error {
	return releaseScript.Run(ctx, l.Client, []string{slotLockPrefix + slot}, owner).Err()
}

// LocalSlotLocker is the single-instance fallback.
type LocalSlotLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func NewLocalSlotLocker() *LocalSlotLocker {
	return &LocalSlotLocker{held: make(map[string]string)}
}

func (l *LocalSlotLocker) Lock(_ context.Context, slot, owner string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[slot]; busy {
		return false, nil
	}
	l.held[slot] = owner
	return true, nil
}

func (l *LocalSlotLocker) Unlock(_ context.Context, slot, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[slot] == owner {
		delete(l.held, slot)
	}
	return nil
}
