package ratelimiter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucket_Take(t *testing.T) {
	now := time.Now()

	t.Run("allows requests within the rate limit", func(t *testing.T) {
		b := &bucket{tokens: 10, capacity: 10, rate: 1, lastRefill: now}
		assert.True(t, b.take(now))
		assert.Equal(t, 9.0, b.tokens)
	})

	t.Run("denies requests when tokens are depleted", func(t *testing.T) {
		b := &bucket{tokens: 0, capacity: 10, rate: 1, lastRefill: now}
		assert.False(t, b.take(now))
	})

	t.Run("refills tokens over time", func(t *testing.T) {
		b := &bucket{tokens: 0, capacity: 10, rate: 1, lastRefill: now.Add(-2 * time.Second)}
		assert.True(t, b.take(now))
		assert.Equal(t, 1.0, b.tokens)
	})

	t.Run("does not exceed capacity", func(t *testing.T) {
		b := &bucket{tokens: 9, capacity: 10, rate: 1, lastRefill: now.Add(-5 * time.Second)}
		assert.True(t, b.take(now))
		assert.Equal(t, 9.0, b.tokens)
	})
}

func TestUserRateLimiter_Allow(t *testing.T) {
	t.Run("identities are limited independently", func(t *testing.T) {
		rl := New(0, 1, time.Minute)
		defer rl.Stop()

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))
		assert.Equal(t, 2, rl.Len())
	})

	t.Run("refill uses the limiter clock", func(t *testing.T) {
		rl := New(1, 1, time.Minute)
		defer rl.Stop()
		current := time.Now()
		rl.now = func() time.Time { return current }

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		current = current.Add(time.Second)
		assert.True(t, rl.Allow("a"))
	})

	t.Run("idle buckets expire", func(t *testing.T) {
		rl := New(0, 1, 20*time.Millisecond)
		defer rl.Stop()

		assert.True(t, rl.Allow("a"))
		assert.Eventually(t, func() bool { return rl.Len() == 0 }, time.Second, 5*time.Millisecond)
		assert.True(t, rl.Allow("a"), "expired identity starts with a full bucket")
	})

	t.Run("concurrent requests never exceed capacity", func(t *testing.T) {
		rl := New(0, 10, time.Minute)
		defer rl.Stop()

		var allowed atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if rl.Allow("same") {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(10), allowed.Load())
	})
}

func TestPerMinute(t *testing.T) {
	rl := PerMinute(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("ip"))
	}
	assert.False(t, rl.Allow("ip"))
}
