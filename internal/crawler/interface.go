package crawler

import (
	"context"

	"git-commander/internal/model"
	"git-commander/pkg/github"
)

// UseCase is the polling, dedup, enrichment and fan-out engine.
type UseCase interface {
	// Register appends a consumer. Registering the same consumer twice
	// delivers every event to it twice.
	Register(c Consumer)

	// RunCycle fetches every resource, filters, enriches and dispatches.
	// Cycles are serialized: a call blocks while another cycle runs.
	RunCycle(ctx context.Context) CycleReport

	// Stats returns a snapshot of the crawler state.
	Stats() Stats
}

// FeedClient fetches one events feed, newest event first.
type FeedClient interface {
	ListEvents(ctx context.Context, path string) ([]github.Event, error)
}

// Shortener turns a canonical URL into a short one.
type Shortener interface {
	Shorten(ctx context.Context, fullURL string) (string, error)
}

// Consumer receives every accepted, enriched event.
type Consumer interface {
	Notify(ctx context.Context, event model.Event) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(ctx context.Context, event model.Event) error

// Notify calls f.
func (f ConsumerFunc) Notify(ctx context.Context, event model.Event) error {
	return f(ctx, event)
}
