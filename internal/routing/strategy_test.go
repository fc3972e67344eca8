package routing

import (
	"math"
	"testing"

	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeastStationsStrategy(t *testing.T) {
	strategy := &LeastStationsStrategy{}

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "least_stations", strategy.Name())
	})

	t.Run("Every edge costs one hop", func(t *testing.T) {
		label, ok := strategy.Relax(2, models.Edge{Departure: 100, Arrival: 500})
		assert.True(t, ok)
		assert.Equal(t, 3.0, label)
	})

	t.Run("Stops on discovery", func(t *testing.T) {
		assert.True(t, strategy.StopOnDiscovery())
		assert.Zero(t, strategy.Heuristic("S1"))
	})
}

func TestShortestDistanceStrategy(t *testing.T) {
	net := graph.NewNetwork()
	require.True(t, net.AddStation("A", "Alpha", models.Coord{X: 0, Y: 0}))
	require.True(t, net.AddStation("B", "Beta", models.Coord{X: 3, Y: 4}))
	require.True(t, net.AddStation("C", "Gamma", models.Coord{X: 6, Y: 0}))

	strategy := NewShortestDistanceStrategy(net, "C")

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "shortest_distance", strategy.Name())
	})

	t.Run("Edge cost is the hop distance", func(t *testing.T) {
		label, ok := strategy.Relax(1.5, models.Edge{From: "A", To: "B"})
		assert.True(t, ok)
		assert.InDelta(t, 6.5, label, 1e-9)
	})

	t.Run("Diagonal hop is truncated", func(t *testing.T) {
		// A(0,0) to D(1,1) is 1.41
		require.True(t, net.AddStation("D", "Delta", models.Coord{X: 1, Y: 1}))
		label, _ := strategy.Relax(0, models.Edge{From: "A", To: "D"})
		assert.Equal(t, 1.0, label)
	})

	t.Run("Heuristic is half the distance to the goal", func(t *testing.T) {
		assert.InDelta(t, 3.0, strategy.Heuristic("A"), 1e-9)
		assert.InDelta(t, 2.5, strategy.Heuristic("B"), 1e-9)
		assert.Zero(t, strategy.Heuristic("C"))
	})

	t.Run("Heuristic never exceeds an edge into the goal", func(t *testing.T) {
		label, _ := strategy.Relax(0, models.Edge{From: "B", To: "C"})
		assert.LessOrEqual(t, strategy.Heuristic("B"), label)
	})

	t.Run("Stops on pop", func(t *testing.T) {
		assert.False(t, strategy.StopOnDiscovery())
	})
}

func TestEarliestArrivalStrategy(t *testing.T) {
	strategy := &EarliestArrivalStrategy{}

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "earliest_arrival", strategy.Name())
	})

	t.Run("Edge departing after arrival is usable", func(t *testing.T) {
		label, ok := strategy.Relax(100, models.Edge{Departure: 110, Arrival: 130})
		assert.True(t, ok)
		assert.Equal(t, 130.0, label)
	})

	t.Run("Edge departing at arrival is usable", func(t *testing.T) {
		_, ok := strategy.Relax(110, models.Edge{Departure: 110, Arrival: 130})
		assert.True(t, ok)
	})

	t.Run("Edge departing before arrival is not", func(t *testing.T) {
		_, ok := strategy.Relax(111, models.Edge{Departure: 110, Arrival: 130})
		assert.False(t, ok)
	})

	t.Run("Infinite label reaches nothing", func(t *testing.T) {
		_, ok := strategy.Relax(math.Inf(1), models.Edge{Departure: 110, Arrival: 130})
		assert.False(t, ok)
	})
}

func TestGetStrategy(t *testing.T) {
	net := graph.NewNetwork()
	require.True(t, net.AddStation("A", "Alpha", models.Coord{X: 0, Y: 0}))

	tests := []struct {
		name     string
		expected string
	}{
		{"any", "any"},
		{"least_stations", "least_stations"},
		{"shortest_distance", "shortest_distance"},
		{"earliest_arrival", "earliest_arrival"},
		{"invalid", "least_stations"}, // Should default
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := GetStrategy(tt.name, net, "A")
			assert.Equal(t, tt.expected, strategy.Name())
		})
	}
}

func TestFrontiers(t *testing.T) {
	t.Run("Queue pops in insertion order", func(t *testing.T) {
		q := newQueueFrontier()
		for _, id := range []models.StationID{"A", "B", "C"} {
			q.Push(&searchItem{station: id})
		}
		assert.Equal(t, 3, q.Len())
		assert.Equal(t, models.StationID("A"), q.Pop().station)
		assert.Equal(t, models.StationID("B"), q.Pop().station)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("Heap pops lowest priority, ties in insertion order", func(t *testing.T) {
		f := newPriorityFrontier()
		f.Push(&searchItem{station: "late", priority: 9})
		f.Push(&searchItem{station: "first", priority: 2})
		f.Push(&searchItem{station: "second", priority: 2})
		f.Push(&searchItem{station: "early", priority: 1})

		var order []models.StationID
		for f.Len() > 0 {
			order = append(order, f.Pop().station)
		}
		assert.Equal(t, []models.StationID{"early", "first", "second", "late"}, order)
	})
}
