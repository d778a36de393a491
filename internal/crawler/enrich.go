package crawler

import (
	"context"

	"git-commander/internal/model"
	"git-commander/pkg/github"
	pkgLog "git-commander/pkg/log"
)

// Enricher attaches a web URL to events, shortening it once per repository.
type Enricher struct {
	l         pkgLog.Logger
	shortener Shortener // nil disables shortening
	cache     *URLCache
	webURL    string
	metrics   *metrics
}

func newEnricher(l pkgLog.Logger, shortener Shortener, cache *URLCache, webURL string, m *metrics) *Enricher {
	return &Enricher{
		l:         l,
		shortener: shortener,
		cache:     cache,
		webURL:    webURL,
		metrics:   m,
	}
}

// Enrich returns event with Repo.WebURL set. It never fails: when shortening
// is impossible the canonical URL is used and nothing is cached, so a later
// event for the same repository tries again.
func (e *Enricher) Enrich(ctx context.Context, event model.Event) model.Event {
	name := event.Repo.Name
	if cached, ok := e.cache.Get(name); ok {
		event.Repo.WebURL = cached
		e.metrics.shortens.WithLabelValues(resultCached).Inc()
		return event
	}

	fullURL := github.RepoWebURL(e.webURL, name)
	if e.shortener == nil {
		event.Repo.WebURL = fullURL
		e.metrics.shortens.WithLabelValues(resultDisabled).Inc()
		return event
	}

	e.l.Debugf(ctx, "Shortening Github URL %s", fullURL)
	short, err := e.shortener.Shorten(ctx, fullURL)
	if err != nil {
		e.l.Warnf(ctx, "Shortening URL %s failed: %v", fullURL, err)
		event.Repo.WebURL = fullURL
		e.metrics.shortens.WithLabelValues(resultFallback).Inc()
		return event
	}

	e.l.Infof(ctx, "Shortened URL %s to %s", fullURL, short)
	e.cache.Set(name, short)
	event.Repo.WebURL = short
	e.metrics.shortens.WithLabelValues(resultShortened).Inc()
	return event
}
