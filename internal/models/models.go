package models

import "math"

// StationID identifies a station
type StationID string

// TrainID identifies a train
type TrainID string

// RegionID identifies a region
type RegionID uint64

// Name is a display name for stations and regions
type Name string

// Time is a timetable time such as 1430
type Time int

// Minutes converts an HHMM time to minutes after midnight
func (t Time) Minutes() int {
	return int(t)/100*60 + int(t)%100
}

// Distance is a geographic distance in coordinate units
type Distance int

// NoValue marks an absent integer field
const NoValue = math.MinInt

// Sentinels returned by lookups on unknown identifiers
const (
	NoStation  StationID = "---"
	NoTrain    TrainID   = "---"
	NoRegion   RegionID  = math.MaxUint64
	NoName     Name      = "!NO_NAME!"
	NoTime     Time      = 9999
	NoDistance Distance  = NoValue
)

// Coord is a point on the integer map grid
type Coord struct {
	X int
	Y int
}

// NoCoord marks an absent coordinate
var NoCoord = Coord{X: NoValue, Y: NoValue}

// Less orders coordinates by y, then by x
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Station is a network node with a location and scheduled departures.
// Outgoing edges are owned by the network's adjacency table, not the record.
type Station struct {
	ID         StationID
	Name       Name
	Coord      Coord
	Region     RegionID
	Departures map[Time]map[TrainID]struct{}
}

// Region is a named polygon in a single-parent containment hierarchy
type Region struct {
	ID       RegionID
	Name     Name
	Polygon  []Coord
	Parent   RegionID
	Children map[RegionID]struct{}
}

// Stop is one (station, departure time) entry of a train itinerary
type Stop struct {
	Station StationID
	Time    Time
}

// Train is an immutable itinerary of stops
type Train struct {
	ID    TrainID
	Stops []Stop
}

// Edge is a directed, time-labeled hop between two consecutive stops of a train
type Edge struct {
	From      StationID
	To        StationID
	Departure Time
	Arrival   Time
	Train     TrainID
}

// Departure is one (time, train) departure event at a station
type Departure struct {
	Time  Time
	Train TrainID
}

// RouteStep is a station on a route with the distance travelled to reach it
type RouteStep struct {
	Station  StationID
	Distance Distance
}

// TimedStop is a station on a timetabled route with the time the route is there
type TimedStop struct {
	Station StationID
	Time    Time
}

// NotFoundRoute is the one-element result for a query with an unknown endpoint
func NotFoundRoute() []RouteStep {
	return []RouteStep{{Station: NoStation, Distance: NoDistance}}
}

// NotFoundTimedRoute is the timetable counterpart of NotFoundRoute
func NotFoundTimedRoute() []TimedStop {
	return []TimedStop{{Station: NoStation, Time: NoTime}}
}
