package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StationLoadTotal counts station directory loads by outcome
	StationLoadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_directory_load_total",
			Help: "Total number of station directory loads",
		},
		[]string{"status"}, // success, error
	)

	// StationsTotal tracks the number of stations in the directory
	StationsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stations_total",
			Help: "Number of stations in the directory",
		},
	)

	// DirectoryReady indicates if the startup load has resolved (0 or 1)
	DirectoryReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stations_directory_ready",
			Help: "Whether the station directory load has resolved (0=false, 1=true)",
		},
	)

	// ObservationFetchTotal counts observation fetches by outcome
	ObservationFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_observation_fetch_total",
			Help: "Total number of latest-observation fetches",
		},
		[]string{"status"}, // success, not_available, error
	)

	// ObservationFetchDuration measures observation fetch latency
	ObservationFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stations_observation_fetch_duration_seconds",
			Help:    "Time spent fetching a single latest observation",
			Buckets: prometheus.DefBuckets,
		},
	)

	// StaleResolutionsDiscarded counts fetch results discarded because a
	// newer selection or a dismissal superseded them
	StaleResolutionsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stations_stale_resolutions_discarded_total",
			Help: "Observation fetch results discarded as stale",
		},
	)

	// CalloutTransitions counts callout state transitions
	CalloutTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_callout_transitions_total",
			Help: "Total callout view-model transitions by state",
		},
		[]string{"state"}, // loading, ready, error, idle
	)

	// SessionsActive tracks currently connected interactive sessions
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stations_sessions_active",
			Help: "Number of interactive map sessions currently connected",
		},
	)

	// SessionsTotal counts interactive sessions over the process lifetime
	SessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stations_sessions_total",
			Help: "Total number of interactive map sessions",
		},
	)

	// PageViewsTotal tracks map page views
	PageViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stations_page_views_total",
			Help: "Total map page views",
		},
	)

	// HTTPRequestDuration measures HTTP request latency by path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stations_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsTotal counts HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks active HTTP requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stations_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// CacheHits tracks HTTP cache hits by path
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_http_cache_hits_total",
			Help: "Total number of HTTP cache hits (304 Not Modified responses)",
		},
		[]string{"path"},
	)

	// MemoryUsageBytes tracks application memory usage
	MemoryUsageBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stations_memory_usage_bytes",
			Help: "Application memory usage in bytes",
		},
	)
)
