package routing

import (
	"time"

	"github.com/passbi/railnet/internal/cache"
	"github.com/passbi/railnet/internal/metrics"
	"github.com/passbi/railnet/internal/models"
)

// EarliestArrivalStrategy is a time-respecting Dijkstra: the label is the
// arrival time, and an edge is usable only if it departs at or after it
type EarliestArrivalStrategy struct{}

func (s *EarliestArrivalStrategy) Name() string { return nameEarliestArrival }

func (s *EarliestArrivalStrategy) Frontier() Frontier { return newPriorityFrontier() }

func (s *EarliestArrivalStrategy) Relax(arrival float64, e models.Edge) (float64, bool) {
	if float64(e.Departure) < arrival {
		return 0, false
	}
	return float64(e.Arrival), true
}

func (s *EarliestArrivalStrategy) Heuristic(models.StationID) float64 { return 0 }

func (s *EarliestArrivalStrategy) StopOnDiscovery() bool { return false }

// RouteEarliestArrival returns the route reaching to as early as possible
// when standing at from at time start. The origin carries start, each
// intermediate station the departure taken from it, and the destination
// its arrival time.
func (r *Router) RouteEarliestArrival(from, to models.StationID, start models.Time) []models.TimedStop {
	started := time.Now()

	if !r.net.HasStation(from) || !r.net.HasStation(to) {
		metrics.ObserveQuery(nameEarliestArrival, metrics.OutcomeNotFound, time.Since(started))
		return models.NotFoundTimedRoute()
	}
	if from == to {
		metrics.ObserveQuery(nameEarliestArrival, metrics.OutcomeFound, time.Since(started))
		return []models.TimedStop{{Station: from, Time: start}}
	}

	key := cache.RouteKey(nameEarliestArrival, r.net.Version(), from, to, start)
	if stops, ok := r.cachedTimed(key); ok {
		metrics.ObserveQuery(nameEarliestArrival, outcome(len(stops)), time.Since(started))
		return stops
	}

	states, found := r.search(from, to, float64(start), &EarliestArrivalStrategy{})

	stops := []models.TimedStop{}
	if found {
		stations, _ := states.path(from, to)
		stops = r.timetable(states, stations, start)
	}

	r.cache.SetTimed(key, stops)
	metrics.ObserveQuery(nameEarliestArrival, outcome(len(stops)), time.Since(started))
	return stops
}

// timetable walks the found route backwards. For each hop it takes the latest
// departure reachable from the earliest arrival at the hop's source that
// still arrives by the time the next hop leaves.
func (r *Router) timetable(states scratch, stations []models.StationID, start models.Time) []models.TimedStop {
	last := len(stations) - 1
	stops := make([]models.TimedStop, len(stations))

	required := models.Time(states[stations[last]].label)
	stops[last] = models.TimedStop{Station: stations[last], Time: required}

	for i := last - 1; i >= 0; i-- {
		earliest := models.Time(states[stations[i]].label)
		// The edge the search relaxed always qualifies
		departure := states[stations[i+1]].predEdge.Departure
		r.net.ForEachEdge(stations[i], func(e models.Edge) bool {
			if e.To == stations[i+1] && e.Departure >= earliest && e.Arrival <= required && e.Departure > departure {
				departure = e.Departure
			}
			return true
		})
		stops[i] = models.TimedStop{Station: stations[i], Time: departure}
		required = departure
	}

	stops[0].Time = start
	return stops
}
