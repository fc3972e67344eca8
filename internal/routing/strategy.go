package routing

import (
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/models"
)

// Strategy defines how a best-first search explores the network.
// Each strategy picks its frontier discipline, how an edge changes the label
// carried by the search, and when the search may stop.
type Strategy interface {
	Name() string
	Frontier() Frontier
	// Relax returns the label reached over e when leaving e.From with label,
	// and false if e cannot be taken.
	Relax(label float64, e models.Edge) (float64, bool)
	// Heuristic is added to a label to order the frontier
	Heuristic(station models.StationID) float64
	// StopOnDiscovery ends the search when the goal is first labeled
	// rather than when it is popped.
	StopOnDiscovery() bool
}

const (
	nameAny              = "any"
	nameLeastStations    = "least_stations"
	nameShortestDistance = "shortest_distance"
	nameEarliestArrival  = "earliest_arrival"
	nameCycle            = "cycle"
)

// AnyStrategy finds some route by breadth-first reachability
type AnyStrategy struct{}

func (s *AnyStrategy) Name() string { return nameAny }

func (s *AnyStrategy) Frontier() Frontier { return newQueueFrontier() }

func (s *AnyStrategy) Relax(label float64, _ models.Edge) (float64, bool) {
	return label + 1, true
}

func (s *AnyStrategy) Heuristic(models.StationID) float64 { return 0 }

func (s *AnyStrategy) StopOnDiscovery() bool { return true }

// LeastStationsStrategy minimizes hops; uniform weight breadth-first search
type LeastStationsStrategy struct{}

func (s *LeastStationsStrategy) Name() string { return nameLeastStations }

func (s *LeastStationsStrategy) Frontier() Frontier { return newQueueFrontier() }

func (s *LeastStationsStrategy) Relax(hops float64, _ models.Edge) (float64, bool) {
	return hops + 1, true
}

func (s *LeastStationsStrategy) Heuristic(models.StationID) float64 { return 0 }

func (s *LeastStationsStrategy) StopOnDiscovery() bool { return true }

// GetStrategy returns a strategy by name; the goal is needed by A* only
func GetStrategy(name string, net *graph.Network, goal models.StationID) Strategy {
	switch name {
	case nameAny:
		return &AnyStrategy{}
	case nameLeastStations:
		return &LeastStationsStrategy{}
	case nameShortestDistance:
		return NewShortestDistanceStrategy(net, goal)
	case nameEarliestArrival:
		return &EarliestArrivalStrategy{}
	default:
		return &LeastStationsStrategy{}
	}
}
