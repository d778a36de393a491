package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "git_commander"

type metrics struct {
	fetches          *prometheus.CounterVec
	events           *prometheus.CounterVec
	shortens         *prometheus.CounterVec
	dispatchFailures *prometheus.CounterVec
	cycleDuration    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, seen *SeenSet, cache *URLCache) *metrics {
	m := &metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "feed_fetches_total",
			Help:      "Feed fetches by resource kind and status",
		}, []string{"kind", "status"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Fetched events by filter outcome",
		}, []string{"outcome"}),
		shortens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "url_enrichments_total",
			Help:      "URL enrichments by result",
		}, []string{"result"}),
		dispatchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_failures_total",
			Help:      "Consumer failures during dispatch",
		}, []string{"consumer"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of a full polling cycle",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}

	reg.MustRegister(
		m.fetches,
		m.events,
		m.shortens,
		m.dispatchFailures,
		m.cycleDuration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "seen_events",
			Help:      "Event ids currently held by the seen-set",
		}, func() float64 { return float64(seen.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cached_urls",
			Help:      "Repositories with a cached short URL",
		}, func() float64 { return float64(cache.Len()) }),
	)

	return m
}

// Filter outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeStale     = "stale"
	outcomeDuplicate = "duplicate"
	outcomeInvalid   = "invalid"
)

// Enrichment results.
const (
	resultCached    = "cached"
	resultShortened = "shortened"
	resultFallback  = "fallback"
	resultDisabled  = "disabled"
)
