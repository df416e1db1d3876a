package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoadsTotal tracks load outcomes per resource type.
	// outcome is one of: loaded, failed, fallback.
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_loads_total",
			Help: "Total number of resource loads by outcome",
		},
		[]string{"resource_type", "outcome"},
	)

	// RetriesTotal tracks backoff retries per resource type.
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_retries_total",
			Help: "Total number of retry attempts",
		},
		[]string{"resource_type"},
	)

	// FallbacksServed tracks fallback resolutions per category.
	FallbacksServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_fallbacks_served_total",
			Help: "Total number of fallback resources served",
		},
		[]string{"category"},
	)

	// CacheHits and CacheMisses track the resource and locale caches.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// LoadLatency tracks successful fetch latency per resource type.
	LoadLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loader_load_latency_seconds",
			Help:    "Fetch latency of successful loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource_type"},
	)

	// ProbeLatency tracks network quality probe round-trips.
	ProbeLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loader_probe_latency_seconds",
			Help:    "Network quality probe latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
	)

	// NetworkQuality exposes the current classification (0=good,
	// 1=moderate, 2=poor).
	NetworkQuality = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loader_network_quality",
			Help: "Current network quality classification (0=good, 1=moderate, 2=poor)",
		},
	)

	// NetworkOnline exposes connectivity (1=online, 0=offline).
	NetworkOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loader_network_online",
			Help: "Whether the network is considered online",
		},
	)
)
