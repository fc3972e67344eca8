package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Stop is a row of stops.txt
type Stop struct {
	StopID   string
	StopName string
	Lat      float64
	Lon      float64
}

// Route is a row of routes.txt
type Route struct {
	RouteID   string
	ShortName string
	LongName  string
	RouteType int
}

// Trip is a row of trips.txt
type Trip struct {
	TripID  string
	RouteID string
}

// StopTime is a row of stop_times.txt
type StopTime struct {
	TripID        string
	StopID        string
	ArrivalTime   string
	DepartureTime string
	StopSequence  int
}

// Feed represents a parsed GTFS feed
type Feed struct {
	Stops     []Stop
	Routes    []Route
	Trips     []Trip
	StopTimes []StopTime
}

type opener func(name string) (io.ReadCloser, error)

// ParseFeed parses a GTFS feed from a ZIP file or an unpacked directory
func ParseFeed(path string) (*Feed, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}

	if info.IsDir() {
		return parseFeed(func(name string) (io.ReadCloser, error) {
			return os.Open(filepath.Join(path, name))
		})
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer reader.Close()

	files := make(map[string]*zip.File)
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files[strings.ToLower(filepath.Base(f.Name))] = f
	}
	return parseFeed(func(name string) (io.ReadCloser, error) {
		f, ok := files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return f.Open()
	})
}

func parseFeed(open opener) (*Feed, error) {
	feed := &Feed{}

	stops, err := parseFile(open, "stops.txt", parseStopsFromReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stops (required): %w", err)
	}
	feed.Stops = stops
	log.Printf("Parsed %d stops", len(stops))

	// Routes are optional; without them every trip counts as rail
	if routes, err := parseFile(open, "routes.txt", parseRoutesFromReader); err == nil {
		feed.Routes = routes
		log.Printf("Parsed %d routes", len(routes))
	} else {
		log.Printf("Warning: failed to parse routes: %v", err)
	}

	trips, err := parseFile(open, "trips.txt", parseTripsFromReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trips (required): %w", err)
	}
	feed.Trips = trips
	log.Printf("Parsed %d trips", len(trips))

	stopTimes, err := parseFile(open, "stop_times.txt", parseStopTimesFromReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stop_times (required): %w", err)
	}
	feed.StopTimes = stopTimes
	log.Printf("Parsed %d stop_times", len(stopTimes))

	return feed, nil
}

func parseFile[T any](open opener, name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	rc, err := open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parse(rc)
}

// rows reads a CSV table and calls fn with a field lookup for every
// well-formed row
func rows(reader io.Reader, table string, fn func(field func(string) string)) error {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	colMap := makeColumnMap(header)

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.Printf("Warning: skipping malformed %s row: %v", table, err)
			continue
		}
		fn(func(name string) string { return getField(record, colMap, name) })
	}
}

func parseStopsFromReader(reader io.Reader) ([]Stop, error) {
	var stops []Stop
	err := rows(reader, "stop", func(field func(string) string) {
		stopID := field("stop_id")
		latStr, lonStr := field("stop_lat"), field("stop_lon")

		// Skip stops without required fields
		if stopID == "" || latStr == "" || lonStr == "" {
			log.Printf("Warning: skipping stop with missing required fields: %s", stopID)
			return
		}

		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			log.Printf("Warning: invalid latitude for stop %s: %v", stopID, err)
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			log.Printf("Warning: invalid longitude for stop %s: %v", stopID, err)
			return
		}

		stops = append(stops, Stop{StopID: stopID, StopName: field("stop_name"), Lat: lat, Lon: lon})
	})
	return stops, err
}

func parseRoutesFromReader(reader io.Reader) ([]Route, error) {
	var routes []Route
	err := rows(reader, "route", func(field func(string) string) {
		routeID := field("route_id")
		if routeID == "" {
			return
		}
		routeType, _ := strconv.Atoi(field("route_type"))
		routes = append(routes, Route{
			RouteID:   routeID,
			ShortName: field("route_short_name"),
			LongName:  field("route_long_name"),
			RouteType: routeType,
		})
	})
	return routes, err
}

func parseTripsFromReader(reader io.Reader) ([]Trip, error) {
	var trips []Trip
	err := rows(reader, "trip", func(field func(string) string) {
		tripID, routeID := field("trip_id"), field("route_id")
		if tripID == "" || routeID == "" {
			return
		}
		trips = append(trips, Trip{TripID: tripID, RouteID: routeID})
	})
	return trips, err
}

func parseStopTimesFromReader(reader io.Reader) ([]StopTime, error) {
	var stopTimes []StopTime
	err := rows(reader, "stop_time", func(field func(string) string) {
		tripID, stopID, seqStr := field("trip_id"), field("stop_id"), field("stop_sequence")
		if tripID == "" || stopID == "" || seqStr == "" {
			return
		}

		sequence, err := strconv.Atoi(seqStr)
		if err != nil {
			log.Printf("Warning: invalid sequence for trip %s: %v", tripID, err)
			return
		}

		stopTimes = append(stopTimes, StopTime{
			TripID:        tripID,
			StopID:        stopID,
			ArrivalTime:   field("arrival_time"),
			DepartureTime: field("departure_time"),
			StopSequence:  sequence,
		})
	})
	return stopTimes, err
}

func makeColumnMap(header []string) map[string]int {
	colMap := make(map[string]int)
	for i, col := range header {
		// Some producers prefix the first header with a UTF-8 BOM
		colMap[strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")] = i
	}
	return colMap
}

func getField(record []string, colMap map[string]int, fieldName string) string {
	if idx, ok := colMap[fieldName]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
