package graph

import (
	"log"
	"sort"

	"github.com/passbi/railnet/internal/models"
)

// AddTrain stores a train and materializes its timed edges.
// The whole itinerary is validated first; on failure nothing is created.
func (n *Network) AddTrain(id models.TrainID, stops []models.Stop) bool {
	if _, exists := n.trains[id]; exists {
		return false
	}
	if err := validateTrain(id); err != nil {
		return false
	}
	for i, stop := range stops {
		if _, ok := n.stations[stop.Station]; !ok {
			log.Printf("Warning: train %s references unknown station %s, rejecting", id, stop.Station)
			return false
		}
		if i > 0 && stop.Time < stops[i-1].Time {
			log.Printf("Warning: train %s arrives at %s before leaving %s, rejecting", id, stop.Station, stops[i-1].Station)
			return false
		}
	}

	train := models.Train{
		ID:    id,
		Stops: append([]models.Stop(nil), stops...),
	}
	n.trains[id] = train
	n.buildRideEdges(train)
	n.touch()
	return true
}

// buildRideEdges creates an edge and a departure event for every consecutive stop pair
func (n *Network) buildRideEdges(train models.Train) {
	for i := 0; i < len(train.Stops)-1; i++ {
		from := train.Stops[i]
		to := train.Stops[i+1]

		n.AddDeparture(from.Station, train.ID, from.Time)
		n.edges[from.Station] = append(n.edges[from.Station], models.Edge{
			From:      from.Station,
			To:        to.Station,
			Departure: from.Time,
			Arrival:   to.Time,
			Train:     train.ID,
		})
	}
}

// TrainCount returns the number of stored trains
func (n *Network) TrainCount() int {
	return len(n.trains)
}

// AllTrains returns all train IDs in ascending order
func (n *Network) AllTrains() []models.TrainID {
	ids := make([]models.TrainID, 0, len(n.trains))
	for id := range n.trains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Train returns a copy of a stored train
func (n *Network) Train(id models.TrainID) (models.Train, bool) {
	t, ok := n.trains[id]
	if !ok {
		return models.Train{}, false
	}
	t.Stops = append([]models.Stop(nil), t.Stops...)
	return t, true
}

// EdgesFrom returns the ordered outgoing edges of a station
func (n *Network) EdgesFrom(id models.StationID) []models.Edge {
	return append([]models.Edge(nil), n.edges[id]...)
}

// ForEachEdge walks a station's outgoing edges in order until fn returns false
func (n *Network) ForEachEdge(id models.StationID, fn func(e models.Edge) bool) {
	for _, e := range n.edges[id] {
		if !fn(e) {
			return
		}
	}
}

// NextStationsFrom lists the stations reached directly from a station, one entry per edge.
// An unknown station yields [NoStation].
func (n *Network) NextStationsFrom(id models.StationID) []models.StationID {
	if _, ok := n.stations[id]; !ok {
		return []models.StationID{models.NoStation}
	}
	result := []models.StationID{}
	for _, e := range n.edges[id] {
		result = append(result, e.To)
	}
	return result
}

// StationsAfter lists the stations a train visits after leaving the given station.
// It yields [NoStation] if either ID is unknown or the train does not depart there.
func (n *Network) StationsAfter(stationID models.StationID, trainID models.TrainID) []models.StationID {
	notFound := []models.StationID{models.NoStation}

	s, ok := n.stations[stationID]
	if !ok {
		return notFound
	}
	train, ok := n.trains[trainID]
	if !ok {
		return notFound
	}

	departs := false
	for _, trains := range s.Departures {
		if _, ok := trains[trainID]; ok {
			departs = true
			break
		}
	}
	if !departs {
		return notFound
	}

	for i, stop := range train.Stops {
		if stop.Station != stationID {
			continue
		}
		result := []models.StationID{}
		for _, rest := range train.Stops[i+1:] {
			result = append(result, rest.Station)
		}
		return result
	}
	return notFound
}

// ClearTrains removes every train together with its edges and departure events
func (n *Network) ClearTrains() {
	for _, train := range n.trains {
		for i := 0; i < len(train.Stops)-1; i++ {
			stop := train.Stops[i]
			n.RemoveDeparture(stop.Station, train.ID, stop.Time)
		}
	}
	log.Printf("Cleared %d trains", len(n.trains))

	n.trains = make(map[models.TrainID]models.Train)
	n.edges = make(map[models.StationID][]models.Edge)
	n.touch()
}
