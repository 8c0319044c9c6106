// Package ratelimiter implements per-identity token buckets.
package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a single token bucket. Idle buckets expire and are dropped.
type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
}

func (b *bucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// UserRateLimiter keeps one bucket per identity (IP, user id, ...).
type UserRateLimiter struct {
	buckets        map[string]*bucket
	mu             sync.Mutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
	now            func() time.Time
}

// New creates a limiter refilling rate tokens per second up to capacity.
// Buckets unused for expirationTime are forgotten.
func New(rate float64, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
		now:            time.Now,
	}
}

// PerMinute allows n requests per minute with a burst of n.
func PerMinute(n int) *UserRateLimiter {
	return New(float64(n)/60, float64(n), time.Hour)
}

func (l *UserRateLimiter) getBucket(identity string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{
			tokens:     l.capacity,
			capacity:   l.capacity,
			rate:       l.rate,
			lastRefill: l.now(),
		}
		l.buckets[identity] = b
	}

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(l.expirationTime, func() {
		l.mu.Lock()
		if l.buckets[identity] == b {
			delete(l.buckets, identity)
		}
		l.mu.Unlock()
	})
	return b
}

// Allow reports whether identity may proceed and consumes a token if so.
func (l *UserRateLimiter) Allow(identity string) bool {
	return l.getBucket(identity).take(l.now())
}

// Len returns the number of tracked identities.
func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop cancels all expiration timers.
func (l *UserRateLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}
