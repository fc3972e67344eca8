package graph

import (
	"testing"

	"github.com/passbi/railnet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStation(t *testing.T) {
	n := NewNetwork()

	t.Run("Valid station is stored", func(t *testing.T) {
		require.True(t, n.AddStation("HKI", "Helsinki", models.Coord{X: 10, Y: 20}))
		assert.Equal(t, models.Name("Helsinki"), n.StationName("HKI"))
		assert.Equal(t, models.Coord{X: 10, Y: 20}, n.StationCoord("HKI"))
		assert.Equal(t, 1, n.StationCount())
	})

	t.Run("Duplicate ID fails and keeps data", func(t *testing.T) {
		assert.False(t, n.AddStation("HKI", "Other", models.Coord{X: 1, Y: 1}))
		assert.Equal(t, models.Name("Helsinki"), n.StationName("HKI"))
		assert.Equal(t, models.Coord{X: 10, Y: 20}, n.StationCoord("HKI"))
	})

	t.Run("Sentinel fields are rejected", func(t *testing.T) {
		assert.False(t, n.AddStation(models.NoStation, "X", models.Coord{}))
		assert.False(t, n.AddStation("X", models.NoName, models.Coord{}))
		assert.False(t, n.AddStation("X", "X", models.NoCoord))
		assert.Equal(t, 1, n.StationCount())
	})

	t.Run("Unknown lookups return sentinels", func(t *testing.T) {
		assert.Equal(t, models.NoName, n.StationName("nope"))
		assert.Equal(t, models.NoCoord, n.StationCoord("nope"))
	})
}

func TestClearAll(t *testing.T) {
	n := NewNetwork()
	require.True(t, n.AddStation("A", "Alpha", models.Coord{X: 0, Y: 0}))
	require.True(t, n.AddStation("B", "Beta", models.Coord{X: 1, Y: 1}))
	require.True(t, n.AddRegion(1, "Country", nil))
	require.True(t, n.AddTrain("T", []models.Stop{{Station: "A", Time: 1}, {Station: "B", Time: 2}}))

	n.ClearAll()

	assert.Equal(t, 0, n.StationCount())
	assert.Empty(t, n.AllRegions())
	assert.Equal(t, 0, n.TrainCount())
	assert.Equal(t, models.NoName, n.StationName("A"))
	assert.Equal(t, models.NoCoord, n.StationCoord("B"))
	assert.Equal(t, models.NoName, n.RegionName(1))
}

func TestStationOrdering(t *testing.T) {
	n := NewNetwork()
	require.True(t, n.AddStation("c", "Cedar", models.Coord{X: 3, Y: 4}))
	require.True(t, n.AddStation("a", "Birch", models.Coord{X: 0, Y: 5}))
	require.True(t, n.AddStation("b", "Aspen", models.Coord{X: 1, Y: 1}))
	require.True(t, n.AddStation("d", "Aspen", models.Coord{X: 5, Y: 0}))

	t.Run("Alphabetically with ID tie-break", func(t *testing.T) {
		assert.Equal(t, []models.StationID{"b", "d", "a", "c"}, n.StationsAlphabetically())
	})

	t.Run("By distance with coordinate tie-break", func(t *testing.T) {
		// a, c and d are all at distance 5; (5,0) < (3,4) < (0,5) by y first
		assert.Equal(t, []models.StationID{"b", "d", "c", "a"}, n.StationsByDistance())
	})
}

func TestFindAndMoveStation(t *testing.T) {
	n := NewNetwork()
	require.True(t, n.AddStation("A", "Alpha", models.Coord{X: 2, Y: 2}))

	assert.Equal(t, models.StationID("A"), n.FindStationAt(models.Coord{X: 2, Y: 2}))
	assert.Equal(t, models.NoStation, n.FindStationAt(models.Coord{X: 9, Y: 9}))

	assert.True(t, n.SetStationCoord("A", models.Coord{X: 9, Y: 9}))
	assert.False(t, n.SetStationCoord("missing", models.Coord{X: 1, Y: 1}))
	assert.Equal(t, models.StationID("A"), n.FindStationAt(models.Coord{X: 9, Y: 9}))
}

func TestRemoveStation(t *testing.T) {
	n := NewNetwork()
	require.True(t, n.AddStation("A", "Alpha", models.Coord{X: 0, Y: 0}))
	require.True(t, n.AddStation("B", "Beta", models.Coord{X: 1, Y: 0}))
	require.True(t, n.AddTrain("T", []models.Stop{{Station: "A", Time: 1}, {Station: "B", Time: 2}}))

	assert.True(t, n.RemoveStation("A"))
	assert.False(t, n.RemoveStation("A"))
	assert.False(t, n.HasStation("A"))
	assert.Empty(t, n.EdgesFrom("A"))
	assert.Equal(t, 1, n.StationCount())
}

func TestClosestStations(t *testing.T) {
	n := NewNetwork()

	t.Run("Empty network", func(t *testing.T) {
		assert.Empty(t, n.ClosestStations(models.Coord{}))
	})

	require.True(t, n.AddStation("far", "Far", models.Coord{X: 100, Y: 100}))
	require.True(t, n.AddStation("near", "Near", models.Coord{X: 1, Y: 0}))

	t.Run("Fewer than three stations", func(t *testing.T) {
		assert.Equal(t, []models.StationID{"near", "far"}, n.ClosestStations(models.Coord{}))
	})

	require.True(t, n.AddStation("mid", "Mid", models.Coord{X: 0, Y: 5}))
	require.True(t, n.AddStation("tieB", "TieB", models.Coord{X: 3, Y: 0}))
	require.True(t, n.AddStation("tieA", "TieA", models.Coord{X: 0, Y: 3}))

	t.Run("Three nearest with ID tie-break", func(t *testing.T) {
		assert.Equal(t, []models.StationID{"near", "tieA", "tieB"}, n.ClosestStations(models.Coord{}))
	})
}

func TestDepartures(t *testing.T) {
	n := NewNetwork()
	require.True(t, n.AddStation("A", "Alpha", models.Coord{}))

	t.Run("Add and reject duplicates", func(t *testing.T) {
		assert.True(t, n.AddDeparture("A", "IC2", 800))
		assert.True(t, n.AddDeparture("A", "IC1", 800))
		assert.True(t, n.AddDeparture("A", "R5", 700))
		assert.True(t, n.AddDeparture("A", "R9", 1200))
		assert.False(t, n.AddDeparture("A", "IC1", 800))
		assert.False(t, n.AddDeparture("missing", "IC1", 800))
	})

	t.Run("Departures after sorted by time then train", func(t *testing.T) {
		expected := []models.Departure{
			{Time: 800, Train: "IC1"},
			{Time: 800, Train: "IC2"},
			{Time: 1200, Train: "R9"},
		}
		assert.Equal(t, expected, n.DeparturesAfter("A", 800))
	})

	t.Run("Remove departure", func(t *testing.T) {
		assert.True(t, n.RemoveDeparture("A", "R5", 700))
		assert.False(t, n.RemoveDeparture("A", "R5", 700))
		assert.False(t, n.RemoveDeparture("A", "IC1", 900))
		assert.Len(t, n.DeparturesAfter("A", 0), 3)
	})

	t.Run("Unknown station yields sentinel pair", func(t *testing.T) {
		assert.Equal(t, []models.Departure{{Time: models.NoTime, Train: models.NoTrain}}, n.DeparturesAfter("missing", 0))
	})
}

func TestVersionChangesOnMutation(t *testing.T) {
	n := NewNetwork()
	v0 := n.Version()

	require.True(t, n.AddStation("A", "Alpha", models.Coord{}))
	v1 := n.Version()
	assert.NotEqual(t, v0, v1)

	assert.False(t, n.AddStation("A", "Alpha", models.Coord{}))
	assert.Equal(t, v1, n.Version(), "failed mutation must not bump the version")
}

func TestEuclideanDistance(t *testing.T) {
	assert.InDelta(t, 5.0, EuclideanDistance(models.Coord{X: 0, Y: 0}, models.Coord{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 0.0, EuclideanDistance(models.Coord{X: 7, Y: 7}, models.Coord{X: 7, Y: 7}), 1e-9)
}

func TestHopDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     models.Coord
		expected models.Distance
	}{
		{"Exact", models.Coord{X: 0, Y: 0}, models.Coord{X: 3, Y: 4}, 5},
		{"Diagonal truncates", models.Coord{X: 0, Y: 0}, models.Coord{X: 1, Y: 1}, 1},
		{"Just under the next unit", models.Coord{X: 0, Y: 0}, models.Coord{X: 4, Y: 4}, 5},
		{"Same point", models.Coord{X: 7, Y: 7}, models.Coord{X: 7, Y: 7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HopDistance(tt.a, tt.b))
		})
	}
}
