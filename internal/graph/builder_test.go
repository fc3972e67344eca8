package graph

import (
	"testing"

	"github.com/passbi/railnet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineNetwork(t *testing.T) *Network {
	t.Helper()
	n := NewNetwork()
	require.True(t, n.AddStation("S1", "One", models.Coord{X: 0, Y: 0}))
	require.True(t, n.AddStation("S2", "Two", models.Coord{X: 3, Y: 4}))
	require.True(t, n.AddStation("S3", "Three", models.Coord{X: 6, Y: 8}))
	return n
}

func TestAddTrain(t *testing.T) {
	n := lineNetwork(t)
	stops := []models.Stop{{Station: "S1", Time: 100}, {Station: "S2", Time: 110}, {Station: "S3", Time: 130}}

	t.Run("Creates edges between consecutive stops", func(t *testing.T) {
		require.True(t, n.AddTrain("T1", stops))

		assert.Equal(t, []models.Edge{{From: "S1", To: "S2", Departure: 100, Arrival: 110, Train: "T1"}}, n.EdgesFrom("S1"))
		assert.Equal(t, []models.Edge{{From: "S2", To: "S3", Departure: 110, Arrival: 130, Train: "T1"}}, n.EdgesFrom("S2"))
		assert.Empty(t, n.EdgesFrom("S3"), "final stop has no outgoing edge")
	})

	t.Run("Registers departures except at the final stop", func(t *testing.T) {
		assert.Equal(t, []models.Departure{{Time: 100, Train: "T1"}}, n.DeparturesAfter("S1", 0))
		assert.Equal(t, []models.Departure{{Time: 110, Train: "T1"}}, n.DeparturesAfter("S2", 0))
		assert.Empty(t, n.DeparturesAfter("S3", 0))
	})

	t.Run("Duplicate ID is rejected", func(t *testing.T) {
		assert.False(t, n.AddTrain("T1", stops))
		assert.Len(t, n.EdgesFrom("S1"), 1)
	})

	t.Run("Parallel trains keep parallel edges", func(t *testing.T) {
		require.True(t, n.AddTrain("T2", []models.Stop{{Station: "S1", Time: 200}, {Station: "S2", Time: 205}}))
		assert.Len(t, n.EdgesFrom("S1"), 2)
	})

	t.Run("Unknown station rejects the whole train", func(t *testing.T) {
		before := n.Version()
		assert.False(t, n.AddTrain("T3", []models.Stop{{Station: "S1", Time: 300}, {Station: "S2", Time: 310}, {Station: "X", Time: 320}}))
		assert.Len(t, n.EdgesFrom("S1"), 2)
		assert.Len(t, n.EdgesFrom("S2"), 1)
		assert.Len(t, n.DeparturesAfter("S1", 300), 0)
		_, ok := n.Train("T3")
		assert.False(t, ok)
		assert.Equal(t, before, n.Version())
	})

	t.Run("Time running backwards is rejected", func(t *testing.T) {
		assert.False(t, n.AddTrain("T4", []models.Stop{{Station: "S1", Time: 500}, {Station: "S2", Time: 400}}))
	})

	t.Run("Sentinel ID is rejected", func(t *testing.T) {
		assert.False(t, n.AddTrain(models.NoTrain, stops))
	})
}

func TestNextStationsFrom(t *testing.T) {
	n := lineNetwork(t)
	require.True(t, n.AddTrain("T1", []models.Stop{{Station: "S1", Time: 1}, {Station: "S2", Time: 2}}))
	require.True(t, n.AddTrain("T2", []models.Stop{{Station: "S1", Time: 3}, {Station: "S3", Time: 4}}))

	assert.Equal(t, []models.StationID{"S2", "S3"}, n.NextStationsFrom("S1"))
	assert.Empty(t, n.NextStationsFrom("S3"))
	assert.Equal(t, []models.StationID{models.NoStation}, n.NextStationsFrom("missing"))
}

func TestStationsAfter(t *testing.T) {
	n := lineNetwork(t)
	require.True(t, n.AddTrain("T1", []models.Stop{{Station: "S1", Time: 1}, {Station: "S2", Time: 2}, {Station: "S3", Time: 3}}))

	tests := []struct {
		name     string
		station  models.StationID
		train    models.TrainID
		expected []models.StationID
	}{
		{"From first stop", "S1", "T1", []models.StationID{"S2", "S3"}},
		{"From middle stop", "S2", "T1", []models.StationID{"S3"}},
		{"Final stop has no departure", "S3", "T1", []models.StationID{models.NoStation}},
		{"Unknown train", "S1", "nope", []models.StationID{models.NoStation}},
		{"Unknown station", "nope", "T1", []models.StationID{models.NoStation}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.StationsAfter(tt.station, tt.train))
		})
	}
}

func TestClearTrains(t *testing.T) {
	n := lineNetwork(t)
	require.True(t, n.AddTrain("T1", []models.Stop{{Station: "S1", Time: 1}, {Station: "S2", Time: 2}}))
	require.True(t, n.AddDeparture("S1", "manual", 50))

	n.ClearTrains()

	assert.Equal(t, 0, n.TrainCount())
	assert.Empty(t, n.EdgesFrom("S1"))
	assert.Equal(t, []models.Departure{{Time: 50, Train: "manual"}}, n.DeparturesAfter("S1", 0))
	assert.True(t, n.AddTrain("T1", []models.Stop{{Station: "S1", Time: 1}, {Station: "S2", Time: 2}}), "ID is free again")
}

func TestAllTrains(t *testing.T) {
	net := lineNetwork(t)
	require.True(t, net.AddTrain("A7", []models.Stop{{Station: "S2", Time: 10}, {Station: "S3", Time: 20}}))
	require.True(t, net.AddTrain("T1", []models.Stop{{Station: "S1", Time: 100}, {Station: "S2", Time: 110}}))

	assert.Equal(t, []models.TrainID{"A7", "T1"}, net.AllTrains())

	net.ClearTrains()
	assert.Empty(t, net.AllTrains())
}
