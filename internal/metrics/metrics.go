package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes
const (
	OutcomeFound    = "found"
	OutcomeNoRoute  = "no_route"
	OutcomeNotFound = "unknown_endpoint"
)

var (
	// RouteQueries counts route queries by algorithm and outcome
	RouteQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railnet_route_queries_total",
		Help: "Total route queries by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	// RouteQueryDuration tracks how long searches take, cache hits included
	RouteQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "railnet_route_query_duration_seconds",
		Help:    "Route query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	}, []string{"algorithm"})

	// RouteCacheLookups counts route cache hits and misses
	RouteCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railnet_route_cache_lookups_total",
		Help: "Route cache lookups by result",
	}, []string{"result"})
)

// ObserveQuery records one finished route query
func ObserveQuery(algorithm, outcome string, elapsed time.Duration) {
	RouteQueries.WithLabelValues(algorithm, outcome).Inc()
	RouteQueryDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit or miss
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	RouteCacheLookups.WithLabelValues(result).Inc()
}
