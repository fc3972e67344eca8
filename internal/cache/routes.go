package cache

import (
	"crypto/sha256"
	"fmt"

	"github.com/bluele/gcache"
	"github.com/passbi/railnet/internal/models"
)

// RouteCache keeps recent route results in memory. Keys embed the network
// version, so any mutation makes older entries unreachable; LRU eviction
// reclaims them.
type RouteCache struct {
	store gcache.Cache
}

// NewRouteCache creates a cache holding up to size results. A size of zero
// or less returns nil, which behaves as a cache that never hits.
func NewRouteCache(size int) *RouteCache {
	if size <= 0 {
		return nil
	}
	return &RouteCache{
		store: gcache.New(size).LRU().Build(),
	}
}

// RouteKey generates a cache key for a route query
func RouteKey(kind string, version uint64, from, to models.StationID, start models.Time) string {
	data := fmt.Sprintf("%d|%s|%s|%d", version, from, to, start)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("route:%x:%s", hash[:8], kind)
}

// GetSteps retrieves a cached distance route
func (c *RouteCache) GetSteps(key string) ([]models.RouteStep, bool) {
	v, ok := c.get(key)
	if !ok {
		return nil, false
	}
	steps, ok := v.([]models.RouteStep)
	if !ok {
		return nil, false
	}
	return append([]models.RouteStep{}, steps...), true
}

// SetSteps caches a distance route
func (c *RouteCache) SetSteps(key string, steps []models.RouteStep) {
	c.set(key, append([]models.RouteStep{}, steps...))
}

// GetTimed retrieves a cached timetable route
func (c *RouteCache) GetTimed(key string) ([]models.TimedStop, bool) {
	v, ok := c.get(key)
	if !ok {
		return nil, false
	}
	stops, ok := v.([]models.TimedStop)
	if !ok {
		return nil, false
	}
	return append([]models.TimedStop{}, stops...), true
}

// SetTimed caches a timetable route
func (c *RouteCache) SetTimed(key string, stops []models.TimedStop) {
	c.set(key, append([]models.TimedStop{}, stops...))
}

// GetStations retrieves a cached station list
func (c *RouteCache) GetStations(key string) ([]models.StationID, bool) {
	v, ok := c.get(key)
	if !ok {
		return nil, false
	}
	ids, ok := v.([]models.StationID)
	if !ok {
		return nil, false
	}
	return append([]models.StationID{}, ids...), true
}

// SetStations caches a station list
func (c *RouteCache) SetStations(key string, ids []models.StationID) {
	c.set(key, append([]models.StationID{}, ids...))
}

// Purge drops every cached entry
func (c *RouteCache) Purge() {
	if c == nil {
		return
	}
	c.store.Purge()
}

func (c *RouteCache) get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	v, err := c.store.Get(key)
	if err == gcache.KeyNotFoundError {
		return nil, false // cache miss
	}
	if err != nil {
		return nil, false
	}
	return v, true
}

func (c *RouteCache) set(key string, value interface{}) {
	if c == nil {
		return
	}
	// Set only fails for loader-backed caches
	_ = c.store.Set(key, value)
}
