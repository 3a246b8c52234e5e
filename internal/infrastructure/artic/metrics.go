package artic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var titleLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "artic_title_lookups_total",
	Help: "Artwork title lookups, by outcome",
}, []string{"result"})

var apiDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "artic_api_duration_seconds",
	Help:    "Latency of Art Institute API artwork requests",
	Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
})

var titleCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "artic_title_cache_entries",
	Help: "Number of entries currently held in the artwork title cache",
})

const (
	resultCacheHit    = "cache_hit"
	resultResolved    = "resolved"
	resultNoTitle     = "no_title"
	resultNotFound    = "not_found"
	resultUnreachable = "unreachable"
)
