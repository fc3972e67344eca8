package routing

import (
	"time"

	"github.com/passbi/railnet/internal/cache"
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/metrics"
	"github.com/passbi/railnet/internal/models"
)

// Router answers route queries over a network. Every query works on its own
// scratch table, so queries never observe each other's search state.
type Router struct {
	net   *graph.Network
	cache *cache.RouteCache
}

// NewRouter creates a new router instance. routeCache may be nil.
func NewRouter(net *graph.Network, routeCache *cache.RouteCache) *Router {
	return &Router{net: net, cache: routeCache}
}

// PurgeCache drops every cached route result
func (r *Router) PurgeCache() {
	r.cache.Purge()
}

// RouteAny returns some route from from to to
func (r *Router) RouteAny(from, to models.StationID) []models.RouteStep {
	return r.distanceRoute(nameAny, from, to)
}

// RouteLeastStations returns a route passing through the fewest stations
func (r *Router) RouteLeastStations(from, to models.StationID) []models.RouteStep {
	return r.distanceRoute(nameLeastStations, from, to)
}

// RouteShortestDistance returns the route with the least total geographic length
func (r *Router) RouteShortestDistance(from, to models.StationID) []models.RouteStep {
	return r.distanceRoute(nameShortestDistance, from, to)
}

// distanceRoute runs one of the searches that report cumulative distance
func (r *Router) distanceRoute(name string, from, to models.StationID) []models.RouteStep {
	started := time.Now()

	if !r.net.HasStation(from) || !r.net.HasStation(to) {
		metrics.ObserveQuery(name, metrics.OutcomeNotFound, time.Since(started))
		return models.NotFoundRoute()
	}
	if from == to {
		metrics.ObserveQuery(name, metrics.OutcomeFound, time.Since(started))
		return []models.RouteStep{{Station: from, Distance: 0}}
	}

	key := cache.RouteKey(name, r.net.Version(), from, to, 0)
	if steps, ok := r.cachedSteps(key); ok {
		metrics.ObserveQuery(name, outcome(len(steps)), time.Since(started))
		return steps
	}

	strategy := GetStrategy(name, r.net, to)
	states, found := r.search(from, to, 0, strategy)

	steps := []models.RouteStep{}
	if found {
		stations, _ := states.path(from, to)
		steps = r.withDistances(stations)
	}

	r.cache.SetSteps(key, steps)
	metrics.ObserveQuery(name, outcome(len(steps)), time.Since(started))
	return steps
}

// withDistances pairs each station with the sum of hop distances travelled to reach it
func (r *Router) withDistances(stations []models.StationID) []models.RouteStep {
	steps := make([]models.RouteStep, 0, len(stations))
	var total models.Distance
	for i, id := range stations {
		if i > 0 {
			total += graph.HopDistance(r.net.StationCoord(stations[i-1]), r.net.StationCoord(id))
		}
		steps = append(steps, models.RouteStep{Station: id, Distance: total})
	}
	return steps
}

func (r *Router) cachedSteps(key string) ([]models.RouteStep, bool) {
	if r.cache == nil {
		return nil, false
	}
	steps, ok := r.cache.GetSteps(key)
	metrics.ObserveCache(ok)
	return steps, ok
}

func (r *Router) cachedTimed(key string) ([]models.TimedStop, bool) {
	if r.cache == nil {
		return nil, false
	}
	stops, ok := r.cache.GetTimed(key)
	metrics.ObserveCache(ok)
	return stops, ok
}

func (r *Router) cachedStations(key string) ([]models.StationID, bool) {
	if r.cache == nil {
		return nil, false
	}
	ids, ok := r.cache.GetStations(key)
	metrics.ObserveCache(ok)
	return ids, ok
}

func outcome(resultLen int) string {
	if resultLen == 0 {
		return metrics.OutcomeNoRoute
	}
	return metrics.OutcomeFound
}
