package cache

import (
	"testing"

	"github.com/passbi/railnet/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRouteKey(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, RouteKey("any", 1, "A", "B", 0), RouteKey("any", 1, "A", "B", 0))
	})

	t.Run("Differs by version", func(t *testing.T) {
		assert.NotEqual(t, RouteKey("any", 1, "A", "B", 0), RouteKey("any", 2, "A", "B", 0))
	})

	t.Run("Differs by kind and start time", func(t *testing.T) {
		assert.NotEqual(t, RouteKey("any", 1, "A", "B", 0), RouteKey("least_stations", 1, "A", "B", 0))
		assert.NotEqual(t, RouteKey("earliest_arrival", 1, "A", "B", 10), RouteKey("earliest_arrival", 1, "A", "B", 20))
	})
}

func TestRouteCache(t *testing.T) {
	c := NewRouteCache(8)
	steps := []models.RouteStep{{Station: "A", Distance: 0}, {Station: "B", Distance: 5}}

	t.Run("Miss before set", func(t *testing.T) {
		_, ok := c.GetSteps("k")
		assert.False(t, ok)
	})

	t.Run("Hit returns a copy", func(t *testing.T) {
		c.SetSteps("k", steps)
		got, ok := c.GetSteps("k")
		assert.True(t, ok)
		assert.Equal(t, steps, got)

		got[0].Station = "mutated"
		again, _ := c.GetSteps("k")
		assert.Equal(t, models.StationID("A"), again[0].Station)
	})

	t.Run("Typed getters do not cross", func(t *testing.T) {
		_, ok := c.GetTimed("k")
		assert.False(t, ok)
	})

	t.Run("Timed and station results", func(t *testing.T) {
		c.SetTimed("t", []models.TimedStop{{Station: "A", Time: 90}})
		timed, ok := c.GetTimed("t")
		assert.True(t, ok)
		assert.Equal(t, []models.TimedStop{{Station: "A", Time: 90}}, timed)

		c.SetStations("s", []models.StationID{"A", "B", "A"})
		ids, ok := c.GetStations("s")
		assert.True(t, ok)
		assert.Equal(t, []models.StationID{"A", "B", "A"}, ids)
	})

	t.Run("Purge empties the cache", func(t *testing.T) {
		c.Purge()
		_, ok := c.GetSteps("k")
		assert.False(t, ok)
	})
}

func TestDisabledCache(t *testing.T) {
	c := NewRouteCache(0)
	assert.Nil(t, c)

	c.SetSteps("k", []models.RouteStep{{Station: "A"}})
	_, ok := c.GetSteps("k")
	assert.False(t, ok)
	c.Purge()
}
