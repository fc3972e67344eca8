package routing

import (
	"time"

	"github.com/passbi/railnet/internal/cache"
	"github.com/passbi/railnet/internal/metrics"
	"github.com/passbi/railnet/internal/models"
)

// dfsFrame is one station on the explicit DFS stack
type dfsFrame struct {
	station models.StationID
	edges   []models.Edge
	next    int
}

// RouteWithCycle returns a route from from that runs into a station it has
// already passed: the stations up to the one closing the cycle, followed by
// the repeated station. It returns [NoStation] for an unknown station and an
// empty slice when no cycle is reachable.
func (r *Router) RouteWithCycle(from models.StationID) []models.StationID {
	started := time.Now()

	if !r.net.HasStation(from) {
		metrics.ObserveQuery(nameCycle, metrics.OutcomeNotFound, time.Since(started))
		return []models.StationID{models.NoStation}
	}

	key := cache.RouteKey(nameCycle, r.net.Version(), from, from, 0)
	if ids, ok := r.cachedStations(key); ok {
		metrics.ObserveQuery(nameCycle, outcome(len(ids)), time.Since(started))
		return ids
	}

	route := r.findCycle(from)

	r.cache.SetStations(key, route)
	metrics.ObserveQuery(nameCycle, outcome(len(route)), time.Since(started))
	return route
}

// findCycle is an iterative DFS. Gray stations are on the current path and
// black ones are finished, so only an edge back to a gray station is a cycle.
func (r *Router) findCycle(from models.StationID) []models.StationID {
	states := newScratch()
	states.state(from).color = gray
	stack := []*dfsFrame{{station: from, edges: r.net.EdgesFrom(from)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.edges) {
			states.state(top.station).color = black
			stack = stack[:len(stack)-1]
			continue
		}

		e := top.edges[top.next]
		top.next++
		if !r.net.HasStation(e.To) {
			continue
		}

		next := states.state(e.To)
		switch next.color {
		case gray:
			route := make([]models.StationID, 0, len(stack)+1)
			for _, frame := range stack {
				route = append(route, frame.station)
			}
			return append(route, e.To)
		case white:
			next.color = gray
			next.pred = top.station
			next.hasPred = true
			stack = append(stack, &dfsFrame{station: e.To, edges: r.net.EdgesFrom(e.To)})
		}
	}

	return []models.StationID{}
}
