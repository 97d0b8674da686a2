package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/natpasukit/jenkins/internal/domain"
)

type memoryLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	buckets map[string]*bucket
	maxKeys int
}

type bucket struct {
	count     int
	windowEnd time.Time
}

type MemoryLimiterConfig struct {
	Now     func() time.Time
	MaxKeys int
}

// NewMemoryLimiter keeps fixed-window counters in process memory. Expired
// buckets are collected once the key table fills up.
func NewMemoryLimiter(cfg MemoryLimiterConfig) domain.RateLimiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 10000
	}
	return &memoryLimiter{
		now:     cfg.Now,
		buckets: make(map[string]*bucket),
		maxKeys: cfg.MaxKeys,
	}
}

func (m *memoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (domain.RateLimitDecision, error) {
	if limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if ok && now.After(b.windowEnd) {
		delete(m.buckets, key)
		ok = false
	}
	if !ok {
		if len(m.buckets) >= m.maxKeys {
			m.gc(now)
		}
		if len(m.buckets) >= m.maxKeys {
			return domain.RateLimitDecision{}, errors.New("rate limiter capacity exceeded")
		}
		b = &bucket{windowEnd: now.Add(window)}
		m.buckets[key] = b
	}

	if b.count < limit {
		b.count++
		return domain.RateLimitDecision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - b.count,
			ResetAt:   b.windowEnd,
		}, nil
	}
	return domain.RateLimitDecision{
		Allowed:   false,
		Limit:     limit,
		Remaining: 0,
		ResetAt:   b.windowEnd,
	}, nil
}

func (m *memoryLimiter) gc(now time.Time) {
	for key, b := range m.buckets {
		if now.After(b.windowEnd) {
			delete(m.buckets, key)
		}
	}
}
