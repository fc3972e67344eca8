package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/passbi/railnet/internal/console"
	"github.com/passbi/railnet/internal/graph"
	"github.com/passbi/railnet/internal/gtfs"
)

func main() {
	// Command-line flags
	gtfsPath := flag.String("gtfs", "", "Path to GTFS ZIP file or directory (required)")
	outPath := flag.String("out", "", "Write the command script here instead of stdout")
	dedupeThreshold := flag.Float64("dedupe-threshold", 30.0, "Stop deduplication threshold in meters")
	allModes := flag.Bool("all-modes", false, "Import bus, ferry and other non-rail trips too")

	flag.Parse()

	// Validate required flags
	if *gtfsPath == "" {
		fmt.Println("Usage: railnet-import --gtfs=<path.zip> [--out=network.txt] [--dedupe-threshold=30] [--all-modes]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate file exists
	if _, err := os.Stat(*gtfsPath); os.IsNotExist(err) {
		log.Fatalf("GTFS feed not found: %s", *gtfsPath)
	}

	log.Println("Starting GTFS import...")
	log.Printf("GTFS feed: %s", *gtfsPath)

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer file.Close()
		out = file
	}

	opts := gtfs.ImportOptions{DedupeMeters: *dedupeThreshold, RailOnly: !*allModes}
	if err := runImport(*gtfsPath, opts, out); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import completed successfully!")
}

func runImport(gtfsPath string, opts gtfs.ImportOptions, out io.Writer) error {
	startTime := time.Now()

	log.Println("Step 1/3: Parsing GTFS feed...")
	feed, err := gtfs.ParseFeed(gtfsPath)
	if err != nil {
		return fmt.Errorf("failed to parse GTFS: %w", err)
	}

	log.Println("Step 2/3: Building network...")
	net := graph.NewNetwork()
	stats := gtfs.Import(net, feed, opts)
	if stats.Stations == 0 {
		return fmt.Errorf("feed has no usable stops")
	}

	log.Println("Step 3/3: Writing command script...")
	if err := console.Export(out, net); err != nil {
		return err
	}

	log.Printf("Stations: %d, trains: %d, skipped trips: %d (%.2fs)",
		stats.Stations, stats.Trains, stats.SkippedTrips, time.Since(startTime).Seconds())
	return nil
}
