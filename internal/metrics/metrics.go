package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts searches by outcome
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fastpath_searches_total",
			Help: "Total number of fast path searches by outcome",
		},
		[]string{"kind"},
	)

	// InsertsTotal counts inserted entries
	InsertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fastpath_inserts_total",
			Help: "Total number of entries inserted into the engine",
		},
	)

	// Entries tracks the number of keys in the exact index
	Entries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fastpath_entries",
			Help: "Number of distinct keys currently held by the engine",
		},
	)

	// ReloadsTotal counts full data set replacements by source
	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fastpath_reloads_total",
			Help: "Total number of full data set replacements",
		},
		[]string{"source"},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fastpath_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"},
	)

	// SearchDuration tracks search latency per transport
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fastpath_search_duration_seconds",
			Help:    "Fast path search duration in seconds",
			Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
		},
		[]string{"transport"},
	)
)

// Search outcome labels
const (
	KindExact  = "exact"
	KindPrefix = "prefix"
	KindMiss   = "miss"
)

// Error type constants
const (
	ErrorTypeDecode      = "decode"
	ErrorTypeClientWrite = "client_write"
	ErrorTypeClientRead  = "client_read"
	ErrorTypeSeedFetch   = "seed_fetch"
	ErrorTypeWarmup      = "warmup"
)

// Reload sources
const (
	SourceAPI        = "api"
	SourceController = "controller"
	SourceWarmup     = "warmup"
)
