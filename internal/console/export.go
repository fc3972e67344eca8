package console

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/models"
)

// Export writes commands that rebuild the network's stations, regions and
// trains when run through a console. Departures added without a train are
// not written.
func Export(w io.Writer, net *graph.Network) error {
	out := bufio.NewWriter(w)

	stations := net.AllStations()
	sort.Slice(stations, func(i, j int) bool { return stations[i] < stations[j] })
	for _, id := range stations {
		fmt.Fprintf(out, "add_station %s %s %s\n", id, quote(net.StationName(id)), formatCoord(net.StationCoord(id)))
	}

	regions := net.AllRegions()
	for _, id := range regions {
		parts := []string{"add_region", formatRegion(id), quote(net.RegionName(id))}
		for _, coord := range net.RegionPolygon(id) {
			parts = append(parts, formatCoord(coord))
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}
	for _, id := range regions {
		if r, ok := net.Region(id); ok && r.Parent != models.NoRegion {
			fmt.Fprintf(out, "add_subregion %s %s\n", formatRegion(id), formatRegion(r.Parent))
		}
	}
	for _, id := range stations {
		if s, ok := net.Station(id); ok && s.Region != models.NoRegion {
			fmt.Fprintf(out, "assign_station %s %s\n", id, formatRegion(s.Region))
		}
	}

	for _, id := range net.AllTrains() {
		train, _ := net.Train(id)
		parts := []string{"add_train", string(id)}
		for _, s := range train.Stops {
			parts = append(parts, fmt.Sprintf("%s:%d", s.Station, s.Time))
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// quote wraps a name for the tokenizer, which has no escape for quotes
func quote(name models.Name) string {
	return `"` + strings.ReplaceAll(string(name), `"`, "'") + `"`
}
