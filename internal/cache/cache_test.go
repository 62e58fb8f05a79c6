package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
)

func TestGetCachesWithinTTL(t *testing.T) {
	loads := 0
	c := NewListings(time.Minute, func(context.Context) ([]domain.Listing, error) {
		loads++
		return []domain.Listing{{}}, nil
	})

	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	// past the TTL the next read reloads
	now = now.Add(2 * time.Minute)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestInvalidateForcesReload(t *testing.T) {
	loads := 0
	c := NewListings(time.Hour, func(context.Context) ([]domain.Listing, error) {
		loads++
		return nil, nil
	})

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestInvalidateDuringLoadNotLost(t *testing.T) {
	loads := 0
	var c *Listings
	c = NewListings(time.Hour, func(context.Context) ([]domain.Listing, error) {
		loads++
		if loads == 1 {
			// a write lands while the first load is still in flight
			c.Invalidate()
		}
		return []domain.Listing{{}}, nil
	})

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// the in-flight snapshot must not have been cached as valid
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestGetLoadErrorNotCached(t *testing.T) {
	loads := 0
	fail := true
	c := NewListings(time.Hour, func(context.Context) ([]domain.Listing, error) {
		loads++
		if fail {
			return nil, errors.New("boom")
		}
		return []domain.Listing{{}}, nil
	})

	_, err := c.Get(context.Background())
	require.Error(t, err)

	fail = false
	out, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 2, loads)
}
