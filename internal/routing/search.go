package routing

import (
	"math"

	"github.com/passbi/railnet/internal/models"
)

type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS path
	black              // finished
)

// nodeState is the per-query scratch kept for one station
type nodeState struct {
	color    color
	label    float64 // tentative hops, distance or arrival time
	estimate float64 // label + heuristic
	pred     models.StationID
	predEdge models.Edge
	hasPred  bool
	settled  bool
}

// scratch is allocated fresh for every query so no search sees another's state
type scratch map[models.StationID]*nodeState

func newScratch() scratch {
	return make(scratch)
}

// state returns the station's scratch entry, creating an unvisited one with an infinite label
func (s scratch) state(id models.StationID) *nodeState {
	st, ok := s[id]
	if !ok {
		st = &nodeState{label: math.Inf(1), estimate: math.Inf(1)}
		s[id] = st
	}
	return st
}

// path follows predecessor IDs back from to and returns the stations and
// the edges taken, both in travel order
func (s scratch) path(from, to models.StationID) ([]models.StationID, []models.Edge) {
	stations := []models.StationID{to}
	edges := []models.Edge{}
	for cur := to; cur != from; {
		st, ok := s[cur]
		if !ok || !st.hasPred {
			return nil, nil
		}
		edges = append(edges, st.predEdge)
		stations = append(stations, st.pred)
		cur = st.pred
	}
	reverse(stations)
	reverse(edges)
	return stations, edges
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// search runs a best-first search from from to to under the given strategy.
// It returns the scratch table and whether to was reached.
func (r *Router) search(from, to models.StationID, start float64, strategy Strategy) (scratch, bool) {
	states := newScratch()
	origin := states.state(from)
	origin.label = start
	origin.estimate = start + strategy.Heuristic(from)

	open := strategy.Frontier()
	open.Push(&searchItem{station: from, label: origin.label, priority: origin.estimate})

	for open.Len() > 0 {
		current := open.Pop()
		cur := states.state(current.station)
		if cur.settled || current.label > cur.label {
			continue
		}
		cur.settled = true

		if current.station == to {
			return states, true
		}

		reached := false
		r.net.ForEachEdge(current.station, func(e models.Edge) bool {
			// Edges into removed stations dangle
			if !r.net.HasStation(e.To) {
				return true
			}
			label, ok := strategy.Relax(cur.label, e)
			if !ok {
				return true
			}
			next := states.state(e.To)
			if next.settled || label >= next.label {
				return true
			}

			next.label = label
			next.estimate = label + strategy.Heuristic(e.To)
			next.pred = current.station
			next.predEdge = e
			next.hasPred = true

			if e.To == to && strategy.StopOnDiscovery() {
				reached = true
				return false
			}
			open.Push(&searchItem{station: e.To, label: next.label, priority: next.estimate})
			return true
		})
		if reached {
			return states, true
		}
	}

	return states, false
}
