package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client, mr
}

func TestRedisSlotLocker(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisSlotLocker(client, 5*time.Second)
	ctx := context.Background()

	ok, err := locker.Lock(ctx, "1:2024-06-01", "req-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locker.Lock(ctx, "1:2024-06-01", "req-b")
	require.NoError(t, err)
	assert.False(t, ok, "slot already held")

	// only the owner can release
	require.NoError(t, locker.Unlock(ctx, "1:2024-06-01", "req-b"))
	assert.True(t, mr.Exists("table_slot:1:2024-06-01"))

	require.NoError(t, locker.Unlock(ctx, "1:2024-06-01", "req-a"))
	assert.False(t, mr.Exists("table_slot:1:2024-06-01"))

	ok, err = locker.Lock(ctx, "1:2024-06-01", "req-b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisSlotLocker_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisSlotLocker(client, time.Second)
	ctx := context.Background()

	ok, err := locker.Lock(ctx, "7:2024-06-02", "crashed-request")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = locker.Lock(ctx, "7:2024-06-02", "next-request")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalSlotLocker_Concurrent(t *testing.T) {
	locker := NewLocalSlotLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, _ := locker.Lock(ctx, "slot", string(rune('a'+i)))
			if ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestRedisTokenBlacklist(t *testing.T) {
	client, mr := setupTestRedis(t)
	bl := NewRedisTokenBlacklist(client)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "token-1", time.Now().Add(time.Hour)))
	revoked, err = bl.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// an already expired token is not stored
	require.NoError(t, bl.Revoke(ctx, "token-2", time.Now().Add(-time.Minute)))
	revoked, err = bl.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = bl.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryTokenBlacklist(t *testing.T) {
	bl := NewMemoryTokenBlacklist()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	bl.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "token-1", now.Add(time.Hour)))
	revoked, _ := bl.IsRevoked(ctx, "token-1")
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = bl.IsRevoked(ctx, "token-1")
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "token-2", now.Add(time.Minute)))
	assert.Len(t, bl.tokens, 1, "expired entries are swept on write")
}
