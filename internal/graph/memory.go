package graph

import (
	"container/heap"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/passbi/railnet/internal/models"
)

// closestLimit is how many stations ClosestStations returns at most
const closestLimit = 3

// Network holds stations, regions, trains and the timed edges the trains induce.
// It is not safe for concurrent use; callers serialize all calls.
type Network struct {
	stations map[models.StationID]*models.Station
	regions  map[models.RegionID]*models.Region
	trains   map[models.TrainID]models.Train
	edges    map[models.StationID][]models.Edge // fromStationID -> ordered []Edge
	version  uint64
}

// NewNetwork creates an empty network
func NewNetwork() *Network {
	return &Network{
		stations: make(map[models.StationID]*models.Station),
		regions:  make(map[models.RegionID]*models.Region),
		trains:   make(map[models.TrainID]models.Train),
		edges:    make(map[models.StationID][]models.Edge),
	}
}

// Version changes on every successful mutation
func (n *Network) Version() uint64 {
	return n.version
}

func (n *Network) touch() {
	n.version++
}

// StationCount returns the number of stations
func (n *Network) StationCount() int {
	return len(n.stations)
}

// ClearAll drops every station, region, train and edge
func (n *Network) ClearAll() {
	n.stations = make(map[models.StationID]*models.Station)
	n.regions = make(map[models.RegionID]*models.Region)
	n.trains = make(map[models.TrainID]models.Train)
	n.edges = make(map[models.StationID][]models.Edge)
	n.touch()
}

// AllStations returns all station IDs in no particular order
func (n *Network) AllStations() []models.StationID {
	ids := make([]models.StationID, 0, len(n.stations))
	for id := range n.stations {
		ids = append(ids, id)
	}
	return ids
}

// AddStation registers a new station. It fails on a duplicate ID or a sentinel field.
func (n *Network) AddStation(id models.StationID, name models.Name, coord models.Coord) bool {
	if _, exists := n.stations[id]; exists {
		return false
	}
	if err := validateStation(id, name, coord); err != nil {
		return false
	}

	n.stations[id] = &models.Station{
		ID:         id,
		Name:       name,
		Coord:      coord,
		Region:     models.NoRegion,
		Departures: make(map[models.Time]map[models.TrainID]struct{}),
	}
	n.touch()
	return true
}

// HasStation reports whether a station is registered
func (n *Network) HasStation(id models.StationID) bool {
	_, ok := n.stations[id]
	return ok
}

// Station returns a copy of a station record
func (n *Network) Station(id models.StationID) (models.Station, bool) {
	s, ok := n.stations[id]
	if !ok {
		return models.Station{}, false
	}
	return *s, true
}

// StationName returns the station's name or NoName
func (n *Network) StationName(id models.StationID) models.Name {
	if s, ok := n.stations[id]; ok {
		return s.Name
	}
	return models.NoName
}

// StationCoord returns the station's coordinates or NoCoord
func (n *Network) StationCoord(id models.StationID) models.Coord {
	if s, ok := n.stations[id]; ok {
		return s.Coord
	}
	return models.NoCoord
}

// StationsAlphabetically returns station IDs ordered by name, ties by ID
func (n *Network) StationsAlphabetically() []models.StationID {
	ids := n.AllStations()
	sort.Slice(ids, func(i, j int) bool {
		a, b := n.stations[ids[i]], n.stations[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return ids
}

// StationsByDistance returns station IDs ordered by distance from the origin.
// Equal distances fall back to coordinate order, then ID.
func (n *Network) StationsByDistance() []models.StationID {
	origin := models.Coord{}
	ids := n.AllStations()
	sort.Slice(ids, func(i, j int) bool {
		a, b := n.stations[ids[i]], n.stations[ids[j]]
		da, db := squaredDistance(a.Coord, origin), squaredDistance(b.Coord, origin)
		if da != db {
			return da < db
		}
		if a.Coord != b.Coord {
			return a.Coord.Less(b.Coord)
		}
		return a.ID < b.ID
	})
	return ids
}

// FindStationAt returns the station at exactly the given coordinates, or NoStation.
// If several stations share the point the lowest ID wins.
func (n *Network) FindStationAt(coord models.Coord) models.StationID {
	found := models.NoStation
	for id, s := range n.stations {
		if s.Coord != coord {
			continue
		}
		if found == models.NoStation || id < found {
			found = id
		}
	}
	return found
}

// SetStationCoord moves an existing station
func (n *Network) SetStationCoord(id models.StationID, coord models.Coord) bool {
	s, ok := n.stations[id]
	if !ok {
		return false
	}
	s.Coord = coord
	n.touch()
	return true
}

// RemoveStation deletes a station with its departures and outgoing edges.
// Edges from other stations into it are left in place; searches skip them.
func (n *Network) RemoveStation(id models.StationID) bool {
	if _, ok := n.stations[id]; !ok {
		return false
	}
	delete(n.stations, id)
	delete(n.edges, id)
	n.touch()
	return true
}

// ClosestStations returns up to three stations nearest to coord, nearest first.
// Ties are broken by station ID.
func (n *Network) ClosestStations(coord models.Coord) []models.StationID {
	h := &candidateHeap{}
	for id, s := range n.stations {
		heap.Push(h, candidate{id: id, dist: squaredDistance(s.Coord, coord)})
		if h.Len() > closestLimit {
			heap.Pop(h)
		}
	}

	result := make([]models.StationID, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(candidate).id
	}
	return result
}

// AddDeparture records that a train leaves a station at the given time
func (n *Network) AddDeparture(stationID models.StationID, trainID models.TrainID, t models.Time) bool {
	s, ok := n.stations[stationID]
	if !ok {
		return false
	}
	trains, ok := s.Departures[t]
	if !ok {
		trains = make(map[models.TrainID]struct{})
		s.Departures[t] = trains
	}
	if _, dup := trains[trainID]; dup {
		return false
	}
	trains[trainID] = struct{}{}
	n.touch()
	return true
}

// RemoveDeparture deletes a departure event, dropping the time bucket once empty
func (n *Network) RemoveDeparture(stationID models.StationID, trainID models.TrainID, t models.Time) bool {
	s, ok := n.stations[stationID]
	if !ok {
		return false
	}
	trains, ok := s.Departures[t]
	if !ok {
		return false
	}
	if _, ok := trains[trainID]; !ok {
		return false
	}
	delete(trains, trainID)
	if len(trains) == 0 {
		delete(s.Departures, t)
	}
	n.touch()
	return true
}

// DeparturesAfter lists departures at or after t, sorted by time then train.
// An unknown station yields a single (NoTime, NoTrain) entry.
func (n *Network) DeparturesAfter(stationID models.StationID, t models.Time) []models.Departure {
	s, ok := n.stations[stationID]
	if !ok {
		return []models.Departure{{Time: models.NoTime, Train: models.NoTrain}}
	}

	result := []models.Departure{}
	for dt, trains := range s.Departures {
		if dt < t {
			continue
		}
		for trainID := range trains {
			result = append(result, models.Departure{Time: dt, Train: trainID})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Time != result[j].Time {
			return result[i].Time < result[j].Time
		}
		return result[i].Train < result[j].Train
	})
	return result
}

// Point converts a grid coordinate to an orb point
func Point(c models.Coord) orb.Point {
	return orb.Point{float64(c.X), float64(c.Y)}
}

// EuclideanDistance is the straight-line distance between two coordinates
func EuclideanDistance(a, b models.Coord) float64 {
	return planar.Distance(Point(a), Point(b))
}

// HopDistance is the length of one hop between stations, truncated to whole units.
// Route distances are sums of hop distances.
func HopDistance(a, b models.Coord) models.Distance {
	return models.Distance(EuclideanDistance(a, b))
}

// squaredDistance compares distances exactly on the integer grid
func squaredDistance(a, b models.Coord) int64 {
	dx := int64(a.X) - int64(b.X)
	dy := int64(a.Y) - int64(b.Y)
	return dx*dx + dy*dy
}

type candidate struct {
	id   models.StationID
	dist int64
}

// candidateHeap is a max-heap: the worst of the kept candidates sits on top
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist > h[j].dist
	}
	return h[i].id > h[j].id
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(candidate))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	last := old[len(old)-1]
	*h = old[:len(old)-1]
	return last
}
