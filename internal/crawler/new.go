package crawler

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git-commander/internal/model"
	pkgLog "git-commander/pkg/log"
)

// Crawler polls GitHub event feeds and fans new events out to consumers.
type Crawler struct {
	l             pkgLog.Logger
	feed          FeedClient
	resources     []model.Resource
	paths         []string
	maxConcurrent int
	now           func() time.Time

	seen       *SeenSet
	cache      *URLCache
	filter     *Filter
	enricher   *Enricher
	dispatcher *Dispatcher
	metrics    *metrics

	cycleMu sync.Mutex

	statsMu   sync.RWMutex
	cycles    int
	lastCycle CycleReport
}

// New creates a Crawler. shortener may be nil to disable URL shortening.
func New(l pkgLog.Logger, feed FeedClient, shortener Shortener, cfg Config) (*Crawler, error) {
	if feed == nil {
		return nil, ErrNilFeedClient
	}
	if cfg.Recency < 0 {
		return nil, ErrNegativeRecency
	}

	paths := make([]string, 0, len(cfg.Resources))
	for _, r := range cfg.Resources {
		p, err := feedPath(r)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	seen := NewSeenSet(cfg.SeenCapacity)
	cache := NewURLCache()
	m := newMetrics(reg, seen, cache)

	return &Crawler{
		l:             l,
		feed:          feed,
		resources:     append([]model.Resource(nil), cfg.Resources...),
		paths:         paths,
		maxConcurrent: cfg.MaxConcurrent,
		now:           now,
		seen:          seen,
		cache:         cache,
		filter:        NewFilter(seen, cfg.Recency, cfg.SeenGrace),
		enricher:      newEnricher(l, shortener, cache, cfg.WebURL, m),
		dispatcher:    newDispatcher(l, m),
		metrics:       m,
	}, nil
}

// Register appends a consumer.
func (c *Crawler) Register(consumer Consumer) {
	c.dispatcher.Register(consumer)
}
