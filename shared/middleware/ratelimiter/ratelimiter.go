// Package ratelimiter keeps one token bucket per client key.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	expiry     *time.Timer
}

func (b *bucket) take(rate, burst float64, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * rate
	if b.tokens > burst {
		b.tokens = burst
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter refills every key at rate tokens per second up to burst.
// A key idle for longer than idle is forgotten, which also resets it to a full bucket.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
	idle    time.Duration
	now     func() time.Time
}

func New(rate, burst float64, idle time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

// PerSecond allows n requests per second per key.
func PerSecond(n float64) *Limiter {
	return New(n, n, time.Hour)
}

func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).take(l.rate, l.burst, l.now())
}

func (l *Limiter) bucket(key string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastRefill: l.now()}
		l.buckets[key] = b
	}
	if b.expiry != nil {
		b.expiry.Stop()
	}
	b.expiry = time.AfterFunc(l.idle, func() { l.forget(key, b) })
	return b
}

func (l *Limiter) forget(key string, b *bucket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buckets[key] == b {
		delete(l.buckets, key)
	}
}

// Len is the number of keys currently tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop cancels every pending expiry.
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.buckets {
		if b.expiry != nil {
			b.expiry.Stop()
		}
	}
}
