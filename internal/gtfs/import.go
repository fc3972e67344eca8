package gtfs

import (
	"log"
	"math"
	"sort"

	"github.com/paulmach/orb/project"
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/models"
)

// ImportOptions controls how a feed becomes stations and trains
type ImportOptions struct {
	// DedupeMeters merges stops closer than this; zero disables merging
	DedupeMeters float64
	// RailOnly drops trips of routes that do not run on rails
	RailOnly bool
}

// ImportStats summarizes an import
type ImportStats struct {
	Stations     int
	Trains       int
	SkippedTrips int
}

// Import adds a feed's stops as stations and its trips as trains.
// Stops are projected to web mercator and rounded to whole meters, and
// times become HHMM timetable times. Entities that already exist or fail
// validation are skipped.
func Import(net *graph.Network, feed *Feed, opts ImportOptions) ImportStats {
	var stats ImportStats

	stops := ValidateAndCleanStops(feed.Stops)
	mapping := make(map[string]string, len(stops))
	if opts.DedupeMeters > 0 {
		stops, mapping = DeduplicateStops(stops, opts.DedupeMeters)
	} else {
		for _, s := range stops {
			mapping[s.StopID] = s.StopID
		}
	}

	for _, s := range stops {
		name := s.StopName
		if name == "" {
			name = s.StopID
		}
		if net.AddStation(models.StationID(s.StopID), models.Name(name), projectStop(s)) {
			stats.Stations++
		}
	}

	trips := groupStopTimes(feed, opts.RailOnly)
	tripIDs := make([]string, 0, len(trips))
	for id := range trips {
		tripIDs = append(tripIDs, id)
	}
	sort.Strings(tripIDs)

	for _, tripID := range tripIDs {
		itinerary, ok := buildItinerary(InterpolateStopTimes(trips[tripID]), mapping)
		if !ok || !net.AddTrain(models.TrainID(tripID), itinerary) {
			stats.SkippedTrips++
			continue
		}
		stats.Trains++
	}

	log.Printf("Imported %d stations and %d trains (%d trips skipped)", stats.Stations, stats.Trains, stats.SkippedTrips)
	return stats
}

// projectStop maps a stop to the integer grid in web mercator meters
func projectStop(s Stop) models.Coord {
	p := project.WGS84.ToMercator(stopPoint(s))
	return models.Coord{X: int(math.Round(p[0])), Y: int(math.Round(p[1]))}
}

// groupStopTimes returns the stop times of every imported trip sorted by sequence
func groupStopTimes(feed *Feed, railOnly bool) map[string][]StopTime {
	keep := make(map[string]bool, len(feed.Trips))
	railRoutes := make(map[string]bool, len(feed.Routes))
	for _, r := range feed.Routes {
		railRoutes[r.RouteID] = IsRail(r)
	}
	for _, t := range feed.Trips {
		// Without routes.txt every trip is kept
		keep[t.TripID] = !railOnly || len(feed.Routes) == 0 || railRoutes[t.RouteID]
	}

	trips := make(map[string][]StopTime)
	for _, st := range feed.StopTimes {
		if keep[st.TripID] {
			trips[st.TripID] = append(trips[st.TripID], st)
		}
	}
	for _, times := range trips {
		sort.SliceStable(times, func(i, j int) bool { return times[i].StopSequence < times[j].StopSequence })
	}
	return trips
}

// buildItinerary turns a trip's stop times into train stops. A train leaves
// each stop at its departure time and the last stop carries its arrival.
// Consecutive stops merged into one station collapse into a single stop.
func buildItinerary(times []StopTime, mapping map[string]string) ([]models.Stop, bool) {
	stops := make([]models.Stop, 0, len(times))
	for i, st := range times {
		stationID, ok := mapping[st.StopID]
		if !ok {
			log.Printf("Warning: trip %s uses unknown stop %s", st.TripID, st.StopID)
			return nil, false
		}

		timeStr := st.DepartureTime
		if i == len(times)-1 {
			timeStr = st.ArrivalTime
		}
		seconds, err := ParseTimeToSeconds(timeStr)
		if err != nil {
			log.Printf("Warning: trip %s: %v", st.TripID, err)
			return nil, false
		}

		stop := models.Stop{Station: models.StationID(stationID), Time: ToTime(seconds)}
		if n := len(stops); n > 0 && stops[n-1].Station == stop.Station {
			stops[n-1].Time = stop.Time
			continue
		}
		stops = append(stops, stop)
	}
	return stops, len(stops) > 0
}
