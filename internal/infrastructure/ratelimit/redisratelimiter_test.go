package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	limit := Limit{Requests: 5, Window: time.Minute}
	key := "test-key-allow"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key, limit)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_DifferentKeys(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	limit := Limit{Requests: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "test-key-1", limit)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "test-key-1", limit)
	require.NoError(t, err)
	assert.False(t, allowed, "key1 should be rate limited")

	allowed, err = limiter.Allow(ctx, "test-key-2", limit)
	require.NoError(t, err)
	assert.True(t, allowed, "key2 should not be affected")
}

func TestRedisRateLimiter_GetRemaining(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	limit := Limit{Requests: 5, Window: time.Minute}
	key := "test-key-remaining"

	remaining, err := limiter.GetRemaining(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, key, limit)
		require.NoError(t, err)
	}

	remaining, err = limiter.GetRemaining(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	limit := Limit{Requests: 2, Window: time.Minute}
	key := "test-key-reset"

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, key, limit)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.False(t, allowed)

	err = limiter.Reset(ctx, key)
	require.NoError(t, err)

	allowed, err = limiter.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.True(t, allowed, "should be allowed after reset")
}

func TestRedisRateLimiter_SlidingWindow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	limit := Limit{Requests: 3, Window: time.Minute}
	key := "test-key-sliding"

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, key, limit)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(2 * time.Second)

	allowed, err = limiter.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.False(t, allowed, "should still be limited inside the window")
}

func TestRedisRateLimiter_ZeroLimitAllowsAll(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "test-key-zero", Limit{})
	require.NoError(t, err)
	assert.True(t, allowed, "zero limits should allow all requests")
}

func BenchmarkRedisRateLimiter_Allow(b *testing.B) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		b.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	defer client.Close()

	limiter := NewRedisRateLimiter(client)
	limit := Limit{Requests: 100000, Window: time.Minute}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = limiter.Allow(ctx, "bench-key", limit)
	}
}
