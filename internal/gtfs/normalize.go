package gtfs

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/passbi/railnet/internal/models"
)

// IsRail reports whether a route runs on rails.
// Keywords win over route_type, which some producers leave at bus.
func IsRail(route Route) bool {
	routeName := strings.ToUpper(route.ShortName + " " + route.LongName)
	if strings.Contains(routeName, "TRAIN") || strings.Contains(routeName, "RAIL") || strings.Contains(routeName, "METRO") {
		return true
	}

	// https://developers.google.com/transit/gtfs/reference#routestxt
	switch {
	case route.RouteType == 0: // Tram, Streetcar, Light rail
		return true
	case route.RouteType == 1: // Subway, Metro
		return true
	case route.RouteType == 2: // Rail
		return true
	case route.RouteType == 5: // Cable tram
		return true
	case route.RouteType == 7: // Funicular
		return true
	case route.RouteType >= 100 && route.RouteType <= 117: // Extended railway services
		return true
	case route.RouteType >= 400 && route.RouteType <= 405: // Extended urban railway
		return true
	case route.RouteType >= 900 && route.RouteType <= 906: // Extended tram
		return true
	}
	return false
}

// DeduplicateStops merges stops closer than thresholdMeters into the first
// of them. It returns the kept stops and a mapping from every stop ID to the
// ID of the stop it was merged into.
func DeduplicateStops(stops []Stop, thresholdMeters float64) ([]Stop, map[string]string) {
	mapping := make(map[string]string, len(stops)) // old_id -> kept_id
	if len(stops) == 0 {
		return stops, mapping
	}

	deduplicated := []Stop{}
	skip := make(map[int]bool)

	for i := range stops {
		if skip[i] {
			continue
		}

		current := stops[i]
		deduplicated = append(deduplicated, current)
		mapping[current.StopID] = current.StopID

		for j := i + 1; j < len(stops); j++ {
			if skip[j] {
				continue
			}

			distance := geo.DistanceHaversine(stopPoint(current), stopPoint(stops[j]))
			if distance < thresholdMeters {
				log.Printf("Deduplicating stop %s (duplicate of %s, distance: %.2fm)",
					stops[j].StopID, current.StopID, distance)
				skip[j] = true
				mapping[stops[j].StopID] = current.StopID
			}
		}
	}

	if removed := len(stops) - len(deduplicated); removed > 0 {
		log.Printf("Deduplicated %d stops to %d (removed %d duplicates)", len(stops), len(deduplicated), removed)
	}

	return deduplicated, mapping
}

// stopPoint returns the stop as an orb point, longitude first
func stopPoint(s Stop) orb.Point {
	return orb.Point{s.Lon, s.Lat}
}

// ParseTimeToSeconds converts GTFS time format (HH:MM:SS) to seconds
// Handles times >= 24:00:00 (next day service)
func ParseTimeToSeconds(timeStr string) (int, error) {
	if timeStr == "" {
		return 0, fmt.Errorf("empty time string")
	}

	parts := strings.Split(timeStr, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time format: %s", timeStr)
	}

	var values [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid time format: %s", timeStr)
		}
		values[i] = v
	}
	if values[1] > 59 || values[2] > 59 {
		return 0, fmt.Errorf("invalid time format: %s", timeStr)
	}

	return values[0]*3600 + values[1]*60 + values[2], nil
}

// ToTime converts seconds after midnight to a timetable time (HHMM).
// Seconds are dropped.
func ToTime(seconds int) models.Time {
	minutes := seconds / 60
	return models.Time(minutes/60*100 + minutes%60)
}

// InterpolateStopTimes fills in missing times of one trip's stop times,
// which must be sorted by sequence. Gaps between two timed stops are filled
// linearly; stops before the first or after the last timed stop copy it.
// A departure missing next to a present arrival copies the arrival.
func InterpolateStopTimes(times []StopTime) []StopTime {
	out := append([]StopTime(nil), times...)
	for i := range out {
		if out[i].DepartureTime == "" {
			out[i].DepartureTime = out[i].ArrivalTime
		}
		if out[i].ArrivalTime == "" {
			out[i].ArrivalTime = out[i].DepartureTime
		}
	}

	var known []int
	seconds := make([]int, len(out))
	for i, st := range out {
		if s, err := ParseTimeToSeconds(st.DepartureTime); err == nil {
			seconds[i] = s
			known = append(known, i)
		}
	}
	if len(known) == 0 {
		if len(out) > 0 {
			log.Printf("Warning: trip %s has no valid times, skipping interpolation", out[0].TripID)
		}
		return out
	}

	fill := func(i, s int) {
		text := formatSeconds(s)
		out[i].ArrivalTime, out[i].DepartureTime = text, text
	}

	for i := 0; i < known[0]; i++ {
		fill(i, seconds[known[0]])
	}
	for k := 0; k+1 < len(known); k++ {
		prev, next := known[k], known[k+1]
		for i := prev + 1; i < next; i++ {
			progress := float64(i-prev) / float64(next-prev)
			fill(i, seconds[prev]+int(progress*float64(seconds[next]-seconds[prev])))
		}
	}
	last := known[len(known)-1]
	for i := last + 1; i < len(out); i++ {
		fill(i, seconds[last])
	}

	return out
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// ValidateAndCleanStops removes stops with invalid coordinates
func ValidateAndCleanStops(stops []Stop) []Stop {
	cleaned := []Stop{}

	for _, stop := range stops {
		if stop.Lat < -90 || stop.Lat > 90 {
			log.Printf("Warning: invalid latitude for stop %s: %f", stop.StopID, stop.Lat)
			continue
		}
		if stop.Lon < -180 || stop.Lon > 180 {
			log.Printf("Warning: invalid longitude for stop %s: %f", stop.StopID, stop.Lon)
			continue
		}
		if stop.Lat == 0 && stop.Lon == 0 {
			log.Printf("Warning: stop %s has null island coordinates, skipping", stop.StopID)
			continue
		}

		cleaned = append(cleaned, stop)
	}

	if len(cleaned) < len(stops) {
		log.Printf("Cleaned stops: removed %d invalid stops", len(stops)-len(cleaned))
	}

	return cleaned
}
