// Package metrics holds prometheus collectors for the feed pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// fetch statuses
const (
	StatusOK          = "ok"
	StatusMalformed   = "malformed"
	StatusUnreachable = "unreachable"
	StatusShape       = "shape"
	StatusUnexpected  = "unexpected"
)

var (
	// CacheRequests counts cache lookups by result, hit or miss
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedreader_cache_requests_total",
			Help: "Total number of feed cache lookups",
		},
		[]string{"result"},
	)

	// FeedFetches counts feed fetches (cache misses) by outcome
	FeedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedreader_fetch_total",
			Help: "Total number of feed fetches by status",
		},
		[]string{"status"},
	)

	// FeedFetchDuration measures fetch and parse time of cache misses
	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedreader_fetch_duration_seconds",
			Help:    "Feed fetch and parse duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ApplicationInfo exposes the running version as a label
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feedreader_application_info",
			Help: "Application information",
		},
		[]string{"version"},
	)
)

// Init sets application info gauge
func Init(version string) {
	ApplicationInfo.WithLabelValues(version).Set(1)
}

// CacheHit records a cache hit
func CacheHit() { CacheRequests.WithLabelValues("hit").Inc() }

// CacheMiss records a cache miss
func CacheMiss() { CacheRequests.WithLabelValues("miss").Inc() }
