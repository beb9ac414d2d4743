package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/mwork/studiofinder/internal/domain/studio"
)

// CachedSource shares one successful fetch across sessions for ttl.
// Failures are never cached.
type CachedSource struct {
	source studio.Source
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	studios   []studio.Studio
	fetchedAt time.Time
}

// NewCachedSource wraps source; ttl <= 0 disables caching
func NewCachedSource(source studio.Source, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, ttl: ttl, now: time.Now}
}

func (c *CachedSource) Studios(ctx context.Context) ([]studio.Studio, error) {
	if c.ttl <= 0 {
		return c.source.Studios(ctx)
	}

	c.mu.Lock()
	if c.studios != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		studios := c.studios
		c.mu.Unlock()
		return studios, nil
	}
	c.mu.Unlock()

	studios, err := c.source.Studios(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.studios = studios
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return studios, nil
}
