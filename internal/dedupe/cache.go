// Package dedupe collapses at-least-once callback deliveries into a single
// dispatch. The cache lives for the process lifetime and is bounded by the
// entry TTL; expired keys are dropped lazily on the next access.
package dedupe

import (
	"sync"
	"time"
)

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// CheckAndSet atomically records key and reports whether it was first seen
// within the TTL window. A false return means a duplicate delivery.
func (c *Cache) CheckAndSet(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if seen, ok := c.entries[key]; ok && now.Sub(seen) < c.ttl {
		return false
	}

	c.sweepLocked(now)
	c.entries[key] = now
	return true
}

func (c *Cache) sweepLocked(now time.Time) {
	for key, seen := range c.entries {
		if now.Sub(seen) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

// Lock serializes callback processing with a bounded acquire wait, so two
// overlapping deliveries cannot race the cache key becoming visible.
type Lock struct {
	ch chan struct{}
}

func NewLock() *Lock {
	l := &Lock{ch: make(chan struct{}, 1)}
	l.ch <- struct{}{}
	return l
}

// Acquire waits at most maxWait for the lock. False means a concurrent holder
// did not release in time; callers treat that as a duplicate in flight.
func (l *Lock) Acquire(maxWait time.Duration) bool {
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case <-l.ch:
		return true
	case <-timer.C:
		return false
	}
}

func (l *Lock) Release() {
	select {
	case l.ch <- struct{}{}:
	default:
	}
}
