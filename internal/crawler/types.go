package crawler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git-commander/internal/model"
	"git-commander/pkg/github"
)

// Config is the dependency bag passed to New().
type Config struct {
	Resources []model.Resource
	WebURL    string // Base of canonical repository URLs, e.g. https://github.com

	Recency      time.Duration // Events older than this are dropped
	SeenGrace    time.Duration // Extra retention of seen ids beyond Recency
	SeenCapacity int           // 0 means no size bound, only the time window

	MaxConcurrent int // Parallel fetches per cycle, 0 means one per resource

	Registerer prometheus.Registerer // nil registers into a private registry
	Now        func() time.Time      // nil means time.Now
}

// CycleReport summarizes one cycle.
type CycleReport struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Resources   int           `json:"resources"`
	FetchFailed int           `json:"fetch_failed"`
	Received    int           `json:"received"`
	Invalid     int           `json:"invalid"`
	Stale       int           `json:"stale"`
	Duplicates  int           `json:"duplicates"`
	Dispatched  int           `json:"dispatched"`
}

// Stats is a point in time view of the crawler.
type Stats struct {
	Resources  int         `json:"resources"`
	Consumers  int         `json:"consumers"`
	SeenEvents int         `json:"seen_events"`
	CachedURLs int         `json:"cached_urls"`
	Cycles     int         `json:"cycles"`
	LastCycle  CycleReport `json:"last_cycle"`
}

// FilterResult is the outcome of filtering one batch.
type FilterResult struct {
	Accepted   []model.Event
	Stale      int
	Duplicates int
}

// fetchResult is what a fetch goroutine hands back to the cycle.
type fetchResult struct {
	resource model.Resource
	events   []github.Event
	err      error
	took     time.Duration
}
