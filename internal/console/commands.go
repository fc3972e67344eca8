package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/passbi/railnet/internal/gtfs"
	"github.com/passbi/railnet/internal/models"
)

type command struct {
	usage   string
	minArgs int
	maxArgs int // -1 for no limit
	run     func(c *Console, args []string) error
}

func commandTable() map[string]command {
	return map[string]command{
		// Stations
		"add_station":             {`add_station ID "Name" (x,y)`, 3, 3, addStation},
		"station_name":            {"station_name ID", 1, 1, stationName},
		"station_coord":           {"station_coord ID", 1, 1, stationCoord},
		"all_stations":            {"all_stations", 0, 0, allStations},
		"station_count":           {"station_count", 0, 0, stationCount},
		"stations_alphabetically": {"stations_alphabetically", 0, 0, stationsAlphabetically},
		"stations_by_distance":    {"stations_by_distance", 0, 0, stationsByDistance},
		"find_station":            {"find_station (x,y)", 1, 1, findStation},
		"change_station_coord":    {"change_station_coord ID (x,y)", 2, 2, changeStationCoord},
		"remove_station":          {"remove_station ID", 1, 1, removeStation},
		"closest_stations":        {"closest_stations (x,y)", 1, 1, closestStations},
		"add_departure":           {"add_departure STATION TRAIN TIME", 3, 3, addDeparture},
		"remove_departure":        {"remove_departure STATION TRAIN TIME", 3, 3, removeDeparture},
		"departures_after":        {"departures_after STATION TIME", 2, 2, departuresAfter},
		"clear_all":               {"clear_all", 0, 0, clearAll},

		// Regions
		"add_region":      {`add_region ID "Name" (x,y)...`, 2, -1, addRegion},
		"all_regions":     {"all_regions", 0, 0, allRegions},
		"region_name":     {"region_name ID", 1, 1, regionName},
		"region_polygon":  {"region_polygon ID", 1, 1, regionPolygon},
		"add_subregion":   {"add_subregion CHILD PARENT", 2, 2, addSubregion},
		"assign_station":  {"assign_station STATION REGION", 2, 2, assignStation},
		"station_regions": {"station_regions STATION", 1, 1, stationRegions},
		"subregions":      {"subregions REGION", 1, 1, subregions},
		"common_parent":   {"common_parent REGION REGION", 2, 2, commonParent},
		"regions_at":      {"regions_at (x,y)", 1, 1, regionsAt},

		// Trains
		"add_train":           {"add_train ID STATION:TIME...", 1, -1, addTrain},
		"next_stations":       {"next_stations STATION", 1, 1, nextStations},
		"train_stations_from": {"train_stations_from STATION TRAIN", 2, 2, trainStationsFrom},
		"train_position":      {"train_position TRAIN TIME", 2, 2, trainPosition},
		"train_count":         {"train_count", 0, 0, trainCount},
		"clear_trains":        {"clear_trains", 0, 0, clearTrains},
		"load_gtfs":           {"load_gtfs PATH", 1, 1, loadGTFS},

		// Routes
		"route_any":               {"route_any FROM TO", 2, 2, routeAny},
		"route_least_stations":    {"route_least_stations FROM TO", 2, 2, routeLeastStations},
		"route_shortest_distance": {"route_shortest_distance FROM TO", 2, 2, routeShortestDistance},
		"route_earliest_arrival":  {"route_earliest_arrival FROM TO TIME", 3, 3, routeEarliestArrival},
		"route_with_cycle":        {"route_with_cycle FROM", 1, 1, routeWithCycle},

		"help": {"help", 0, 0, help},
	}
}

func addStation(c *Console, args []string) error {
	coord, err := parseCoord(args[2])
	if err != nil {
		return err
	}
	c.result(c.net.AddStation(models.StationID(args[0]), models.Name(args[1]), coord))
	return nil
}

func stationName(c *Console, args []string) error {
	c.println(c.net.StationName(models.StationID(args[0])))
	return nil
}

func stationCoord(c *Console, args []string) error {
	c.println(formatCoord(c.net.StationCoord(models.StationID(args[0]))))
	return nil
}

func allStations(c *Console, _ []string) error {
	ids := c.net.AllStations()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	c.printStations(ids)
	return nil
}

func stationCount(c *Console, _ []string) error {
	c.println(c.net.StationCount())
	return nil
}

func stationsAlphabetically(c *Console, _ []string) error {
	c.printStations(c.net.StationsAlphabetically())
	return nil
}

func stationsByDistance(c *Console, _ []string) error {
	c.printStations(c.net.StationsByDistance())
	return nil
}

func findStation(c *Console, args []string) error {
	coord, err := parseCoord(args[0])
	if err != nil {
		return err
	}
	c.println(c.net.FindStationAt(coord))
	return nil
}

func changeStationCoord(c *Console, args []string) error {
	coord, err := parseCoord(args[1])
	if err != nil {
		return err
	}
	c.result(c.net.SetStationCoord(models.StationID(args[0]), coord))
	return nil
}

func removeStation(c *Console, args []string) error {
	c.result(c.net.RemoveStation(models.StationID(args[0])))
	return nil
}

func closestStations(c *Console, args []string) error {
	coord, err := parseCoord(args[0])
	if err != nil {
		return err
	}
	c.printStations(c.net.ClosestStations(coord))
	return nil
}

func addDeparture(c *Console, args []string) error {
	t, err := parseTime(args[2])
	if err != nil {
		return err
	}
	c.result(c.net.AddDeparture(models.StationID(args[0]), models.TrainID(args[1]), t))
	return nil
}

func removeDeparture(c *Console, args []string) error {
	t, err := parseTime(args[2])
	if err != nil {
		return err
	}
	c.result(c.net.RemoveDeparture(models.StationID(args[0]), models.TrainID(args[1]), t))
	return nil
}

func departuresAfter(c *Console, args []string) error {
	t, err := parseTime(args[1])
	if err != nil {
		return err
	}
	departures := c.net.DeparturesAfter(models.StationID(args[0]), t)
	if len(departures) == 0 {
		c.println("(none)")
		return nil
	}
	parts := make([]string, len(departures))
	for i, d := range departures {
		parts[i] = fmt.Sprintf("%d %s", d.Time, d.Train)
	}
	c.println(strings.Join(parts, ", "))
	return nil
}

func clearAll(c *Console, _ []string) error {
	c.net.ClearAll()
	c.router.PurgeCache()
	c.println("OK")
	return nil
}

func addRegion(c *Console, args []string) error {
	id, err := parseRegionID(args[0])
	if err != nil {
		return err
	}
	polygon := make([]models.Coord, 0, len(args)-2)
	for _, token := range args[2:] {
		coord, err := parseCoord(token)
		if err != nil {
			return err
		}
		polygon = append(polygon, coord)
	}
	c.result(c.net.AddRegion(id, models.Name(args[1]), polygon))
	return nil
}

func allRegions(c *Console, _ []string) error {
	c.printRegions(c.net.AllRegions())
	return nil
}

func regionName(c *Console, args []string) error {
	id, err := parseRegionID(args[0])
	if err != nil {
		return err
	}
	c.println(c.net.RegionName(id))
	return nil
}

func regionPolygon(c *Console, args []string) error {
	id, err := parseRegionID(args[0])
	if err != nil {
		return err
	}
	polygon := c.net.RegionPolygon(id)
	if len(polygon) == 0 {
		c.println("(none)")
		return nil
	}
	parts := make([]string, len(polygon))
	for i, coord := range polygon {
		parts[i] = formatCoord(coord)
	}
	c.println(strings.Join(parts, " "))
	return nil
}

func addSubregion(c *Console, args []string) error {
	child, err := parseRegionID(args[0])
	if err != nil {
		return err
	}
	parent, err := parseRegionID(args[1])
	if err != nil {
		return err
	}
	c.result(c.net.AddSubregion(child, parent))
	return nil
}

func assignStation(c *Console, args []string) error {
	region, err := parseRegionID(args[1])
	if err != nil {
		return err
	}
	c.result(c.net.AssignStationToRegion(models.StationID(args[0]), region))
	return nil
}

func stationRegions(c *Console, args []string) error {
	c.printRegions(c.net.RegionsContaining(models.StationID(args[0])))
	return nil
}

func subregions(c *Console, args []string) error {
	id, err := parseRegionID(args[0])
	if err != nil {
		return err
	}
	c.printRegions(c.net.DescendantsOf(id))
	return nil
}

func commonParent(c *Console, args []string) error {
	a, err := parseRegionID(args[0])
	if err != nil {
		return err
	}
	b, err := parseRegionID(args[1])
	if err != nil {
		return err
	}
	c.println(formatRegion(c.net.NearestCommonAncestor(a, b)))
	return nil
}

func regionsAt(c *Console, args []string) error {
	coord, err := parseCoord(args[0])
	if err != nil {
		return err
	}
	c.printRegions(c.net.RegionsAt(coord))
	return nil
}

func addTrain(c *Console, args []string) error {
	stops := make([]models.Stop, 0, len(args)-1)
	for _, token := range args[1:] {
		s, err := parseStop(token)
		if err != nil {
			return err
		}
		stops = append(stops, s)
	}
	c.result(c.net.AddTrain(models.TrainID(args[0]), stops))
	return nil
}

func nextStations(c *Console, args []string) error {
	c.printStations(c.net.NextStationsFrom(models.StationID(args[0])))
	return nil
}

func trainStationsFrom(c *Console, args []string) error {
	c.printStations(c.net.StationsAfter(models.StationID(args[0]), models.TrainID(args[1])))
	return nil
}

func trainPosition(c *Console, args []string) error {
	t, err := parseTime(args[1])
	if err != nil {
		return err
	}
	train := models.TrainID(args[0])
	point, ok := c.positions.EstimatePosition(train, t)
	if !ok {
		c.println("Not running")
		return nil
	}
	covered, _ := c.positions.DistanceAlongTrain(train, t)
	c.printf("(%.2f,%.2f) after %.2f\n", point[0], point[1], covered)
	return nil
}

func clearTrains(c *Console, _ []string) error {
	c.net.ClearTrains()
	c.router.PurgeCache()
	c.println("OK")
	return nil
}

func trainCount(c *Console, _ []string) error {
	c.println(c.net.TrainCount())
	return nil
}

func loadGTFS(c *Console, args []string) error {
	feed, err := gtfs.ParseFeed(args[0])
	if err != nil {
		return err
	}
	stats := gtfs.Import(c.net, feed, c.imports)
	c.printf("Imported %d stations and %d trains (%d trips skipped)\n", stats.Stations, stats.Trains, stats.SkippedTrips)
	return nil
}

func routeAny(c *Console, args []string) error {
	c.printSteps(c.router.RouteAny(models.StationID(args[0]), models.StationID(args[1])))
	return nil
}

func routeLeastStations(c *Console, args []string) error {
	c.printSteps(c.router.RouteLeastStations(models.StationID(args[0]), models.StationID(args[1])))
	return nil
}

func routeShortestDistance(c *Console, args []string) error {
	c.printSteps(c.router.RouteShortestDistance(models.StationID(args[0]), models.StationID(args[1])))
	return nil
}

func routeEarliestArrival(c *Console, args []string) error {
	t, err := parseTime(args[2])
	if err != nil {
		return err
	}
	stops := c.router.RouteEarliestArrival(models.StationID(args[0]), models.StationID(args[1]), t)
	if len(stops) == 0 {
		c.println("No route")
		return nil
	}
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = fmt.Sprintf("%s @%d", s.Station, s.Time)
	}
	c.println(strings.Join(parts, " -> "))
	return nil
}

func routeWithCycle(c *Console, args []string) error {
	route := c.router.RouteWithCycle(models.StationID(args[0]))
	if len(route) == 0 {
		c.println("No cycle")
		return nil
	}
	parts := make([]string, len(route))
	for i, id := range route {
		parts[i] = string(id)
	}
	c.println(strings.Join(parts, " -> "))
	return nil
}

func help(c *Console, _ []string) error {
	names := make([]string, 0, len(c.commands)+1)
	for name := range c.commands {
		names = append(names, name)
	}
	names = append(names, "quit")
	sort.Strings(names)
	for _, name := range names {
		if cmd, ok := c.commands[name]; ok {
			c.println(cmd.usage)
			continue
		}
		c.println(name)
	}
	return nil
}

func (c *Console) printStations(ids []models.StationID) {
	if len(ids) == 0 {
		c.println("(none)")
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	c.println(strings.Join(parts, " "))
}

func (c *Console) printRegions(ids []models.RegionID) {
	if len(ids) == 0 {
		c.println("(none)")
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = formatRegion(id)
	}
	c.println(strings.Join(parts, " "))
}

func (c *Console) printSteps(steps []models.RouteStep) {
	if len(steps) == 0 {
		c.println("No route")
		return
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		if s.Distance == models.NoDistance {
			parts[i] = string(s.Station)
			continue
		}
		parts[i] = fmt.Sprintf("%s (%d)", s.Station, s.Distance)
	}
	c.println(strings.Join(parts, " -> "))
}
