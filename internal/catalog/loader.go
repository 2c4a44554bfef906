package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"itinera/internal/itinerary"
)

// AvailabilityLoader caches availability per experience for one editing
// session. Concurrent loads of the same experience share a single fetch, and
// failed fetches are not cached so the caller can retry.
type AvailabilityLoader struct {
	client  Client
	timeout time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]itinerary.AvailabilityDay
}

func NewAvailabilityLoader(client Client, timeout time.Duration) *AvailabilityLoader {
	return &AvailabilityLoader{
		client:  client,
		timeout: timeout,
		cache:   make(map[string][]itinerary.AvailabilityDay),
	}
}

// Cached returns what was loaded before without fetching.
func (l *AvailabilityLoader) Cached(experienceID string) ([]itinerary.AvailabilityDay, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	days, ok := l.cache[experienceID]
	return days, ok
}

// Load returns the cached catalog or fetches it. If ctx ends first the call
// returns ctx.Err(); the fetch itself keeps running and its result still lands
// in the cache.
func (l *AvailabilityLoader) Load(ctx context.Context, experienceID string) ([]itinerary.AvailabilityDay, error) {
	if days, ok := l.Cached(experienceID); ok {
		return days, nil
	}

	ch := l.group.DoChan(experienceID, func() (interface{}, error) {
		if days, ok := l.Cached(experienceID); ok {
			return days, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()

		days, err := l.client.FetchAvailability(fetchCtx, experienceID)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[experienceID] = days
		l.mu.Unlock()
		return days, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]itinerary.AvailabilityDay), nil
	}
}

// Invalidate drops one cached entry so the next Load refetches.
func (l *AvailabilityLoader) Invalidate(experienceID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, experienceID)
}
