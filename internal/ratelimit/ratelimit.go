// Package ratelimit provides the per-window request ceilings used by the
// request pipeline. The store is pluggable: a Redis fixed-window counter when
// an address is configured, otherwise in-process token buckets. Exact
// thresholds and algorithm are configuration, not contract; the only hard
// requirement is that the login ceiling is tighter than the general one.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Store answers whether one more request under key is allowed within the
// window. retryAfter is a hint for the Retry-After header when denied.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

// memoryStore keeps a token bucket per key. Buckets idle for two windows are
// dropped on the next access to bound memory.
type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
}

type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	window   time.Duration
}

// NewMemory creates the in-process fallback store.
func NewMemory() Store {
	return &memoryStore{buckets: make(map[string]*bucketEntry)}
}

func (s *memoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if limit <= 0 {
		return true, 0, nil
	}
	if window <= 0 {
		window = time.Minute
	}

	s.mu.Lock()
	entry, ok := s.buckets[key]
	if !ok {
		perSecond := float64(limit) / window.Seconds()
		entry = &bucketEntry{
			limiter: rate.NewLimiter(rate.Limit(perSecond), limit),
			window:  window,
		}
		s.buckets[key] = entry
	}
	entry.lastSeen = time.Now()
	s.cleanupLocked()
	s.mu.Unlock()

	if entry.limiter.Allow() {
		return true, 0, nil
	}
	return false, time.Second, nil
}

func (s *memoryStore) cleanupLocked() {
	now := time.Now()
	for key, entry := range s.buckets {
		if now.Sub(entry.lastSeen) > 2*entry.window {
			delete(s.buckets, key)
		}
	}
}
