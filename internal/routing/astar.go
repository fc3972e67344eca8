package routing

import (
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/models"
)

// ShortestDistanceStrategy is A* over truncated hop distances. On the integer
// grid every nonzero hop is at least one unit long, so its truncated length is
// at least half its straight-line length. Half the straight-line distance to
// the goal is therefore a consistent heuristic and the goal's label is final
// when it is popped.
type ShortestDistanceStrategy struct {
	net  *graph.Network
	goal models.Coord
}

// NewShortestDistanceStrategy creates an A* strategy towards goal
func NewShortestDistanceStrategy(net *graph.Network, goal models.StationID) *ShortestDistanceStrategy {
	return &ShortestDistanceStrategy{net: net, goal: net.StationCoord(goal)}
}

func (s *ShortestDistanceStrategy) Name() string { return nameShortestDistance }

func (s *ShortestDistanceStrategy) Frontier() Frontier { return newPriorityFrontier() }

// Relax adds the edge's hop distance
func (s *ShortestDistanceStrategy) Relax(dist float64, e models.Edge) (float64, bool) {
	return dist + s.edgeLength(e), true
}

func (s *ShortestDistanceStrategy) Heuristic(station models.StationID) float64 {
	return graph.EuclideanDistance(s.net.StationCoord(station), s.goal) / 2
}

func (s *ShortestDistanceStrategy) StopOnDiscovery() bool { return false }

func (s *ShortestDistanceStrategy) edgeLength(e models.Edge) float64 {
	return float64(graph.HopDistance(s.net.StationCoord(e.From), s.net.StationCoord(e.To)))
}
