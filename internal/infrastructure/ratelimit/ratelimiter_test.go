package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Limit{Requests: 3, Window: time.Minute})
	limiter.now = fixedNow(time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC))
	ctx := context.Background()

	for i := range 3 {
		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied")

	allowed, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are not affected")
}

func TestRedisRateLimiter_NextWindow(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Limit{Requests: 1, Window: time.Minute})
	start := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	limiter.now = fixedNow(start)
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "k")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "k")
	assert.False(t, allowed)

	limiter.now = fixedNow(start.Add(time.Minute))
	allowed, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_SetsTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Limit{Requests: 5, Window: time.Minute})
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "ttl")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute+time.Second, mr.TTL(keys[0]))
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Limit{Requests: 1, Window: time.Minute})
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "reset")
	allowed, _ := limiter.Allow(ctx, "reset")
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "reset"))
	allowed, err := limiter.Allow(ctx, "reset")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_Unavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, Limit{Requests: 1, Window: time.Minute})
	mr.Close()

	_, err := limiter.Allow(context.Background(), "down")
	assert.Error(t, err)
}

func TestRateLimiters_ZeroLimitAllowsAll(t *testing.T) {
	_, client := setupTestRedis(t)
	limiters := []RateLimiter{
		NewRedisRateLimiter(client, Limit{}),
		NewMemoryRateLimiter(Limit{}),
	}

	for _, l := range limiters {
		for range 10 {
			allowed, err := l.Allow(context.Background(), "zero")
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	}
}

func TestMemoryRateLimiter_Allow(t *testing.T) {
	limiter := NewMemoryRateLimiter(Limit{Requests: 2, Window: time.Hour})
	ctx := context.Background()

	for range 2 {
		allowed, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)
}
