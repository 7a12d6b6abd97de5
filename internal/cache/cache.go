// Package cache provides a small get-or-compute cache with a fixed TTL and
// explicit invalidation. Instances are dependency-injected so tests can
// control time deterministically.
package cache

import (
	"sync"
	"time"
)

// TTL caches a single computed value for a fixed window.
type TTL[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   func() time.Time
	value   T
	expires time.Time
	valid   bool
}

// NewTTL creates a cache with the given time-to-live.
func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return NewTTLWithClock[T](ttl, time.Now)
}

// NewTTLWithClock creates a cache with an injected clock.
func NewTTLWithClock[T any](ttl time.Duration, clock func() time.Time) *TTL[T] {
	return &TTL[T]{ttl: ttl, clock: clock}
}

// Get returns the cached value, or runs compute and caches its result for
// the TTL window. A compute error is returned without caching anything.
func (c *TTL[T]) Get(compute func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.valid && now.Before(c.expires) {
		return c.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = value
	c.expires = now.Add(c.ttl)
	c.valid = true
	return value, nil
}

// Invalidate drops the cached value so the next Get recomputes.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
