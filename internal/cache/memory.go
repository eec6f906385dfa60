package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMemorySize = 1024
	defaultTTL        = time.Hour
)

type entry struct {
	value    string
	storedAt time.Time
}

// MemoryCache is an in-process LRU whose entries expire a fixed window after
// they were stored. Expiry is checked on read against the injected clock.
type MemoryCache struct {
	entries *lru.Cache[string, entry]
	ttl     time.Duration
	now     func() time.Time
}

type MemoryOption func(*MemoryCache)

// WithClock replaces time.Now; tests use it to step past the TTL.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

func NewMemoryCache(size int, ttl time.Duration, opts ...MemoryOption) (*MemoryCache, error) {
	if size <= 0 {
		size = defaultMemorySize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	c := &MemoryCache{entries: entries, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.entries.Add(key, entry{value: value, storedAt: c.now()})
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return "", false, nil
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.entries.Remove(key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Len() int { return c.entries.Len() }
