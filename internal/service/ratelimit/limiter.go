package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	refilled time.Time
}

func (b *bucket) take(now time.Time) bool {
	elapsed := now.Sub(b.refilled).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.perSec
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.refilled = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Limiter is a keyed token-bucket limiter shared by the outbound provider
// clients ("espn:mlb", "oddsapi:nfl") and the per-IP API throttle. Buckets
// are created on first use with the caller's capacity and refill rate.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

func New() *Limiter {
	return &Limiter{buckets: make(map[string]*bucket)}
}

// Allow consumes one token for key, creating a full bucket on first sight.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, perSec: refillPerSec, refilled: now}
		l.buckets[key] = b
	}
	return b.take(now)
}

// Reset drops the bucket for key so the next Allow starts full.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}
