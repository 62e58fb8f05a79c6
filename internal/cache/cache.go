// Package cache holds the short-TTL listings cache. Reads within the TTL
// reuse the last load; writes anywhere in the system call Invalidate so the
// next read hits storage again.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
)

// LoadFunc produces a fresh listings snapshot from storage.
type LoadFunc func(ctx context.Context) ([]domain.Listing, error)

type Listings struct {
	ttl  time.Duration
	load LoadFunc
	now  func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	data     []domain.Listing
	loadedAt time.Time
	valid    bool
	gen      uint64 // bumped by Invalidate; a load only sticks if unchanged
}

func NewListings(ttl time.Duration, load LoadFunc) *Listings {
	return &Listings{ttl: ttl, load: load, now: time.Now}
}

// Get returns the cached snapshot, reloading when stale or invalidated.
// Concurrent reloads collapse into a single storage query.
func (c *Listings) Get(ctx context.Context) ([]domain.Listing, error) {
	c.mu.Lock()
	if c.valid && c.now().Sub(c.loadedAt) < c.ttl {
		data := c.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("listings", func() (any, error) {
		c.mu.Lock()
		startGen := c.gen
		c.mu.Unlock()

		data, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// An Invalidate that raced this load means the snapshot may already
		// be stale; serve it to this caller but don't cache it.
		if c.gen == startGen {
			c.data = data
			c.loadedAt = c.now()
			c.valid = true
		}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Listing), nil
}

// Invalidate drops the snapshot so the next Get reloads. Called after every
// referral insert and by the manual refresh endpoint.
func (c *Listings) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.data = nil
	c.gen++
	c.mu.Unlock()
}
