package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/passbi/railnet/internal/cache"
	"github.com/passbi/railnet/internal/config"
	"github.com/passbi/railnet/internal/console"
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/gtfs"
	"github.com/passbi/railnet/internal/routing"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "", "Path to a YAML config file")
	scriptPath := flag.String("script", "", "Read commands from this file instead of stdin")
	gtfsPath := flag.String("gtfs", "", "GTFS feed (ZIP or directory) to load before reading commands")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.InitLogging(cfg)

	net := graph.NewNetwork()
	router := routing.NewRouter(net, cache.NewRouteCache(cfg.CacheSize))

	if *gtfsPath != "" {
		log.Printf("Loading GTFS feed: %s", *gtfsPath)
		feed, err := gtfs.ParseFeed(*gtfsPath)
		if err != nil {
			log.Fatalf("Failed to parse GTFS: %v", err)
		}
		gtfs.Import(net, feed, gtfs.ImportOptions{DedupeMeters: cfg.DedupeMeters, RailOnly: cfg.RailOnly})
	}

	var in io.Reader = os.Stdin
	if *scriptPath != "" {
		file, err := os.Open(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to open script: %v", err)
		}
		defer file.Close()
		in = file
	}

	c := console.New(net, router, os.Stdout, cfg)
	if err := c.Run(in); err != nil {
		log.Fatalf("Console stopped: %v", err)
	}
}
