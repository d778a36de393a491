package crawler

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgLog "git-commander/pkg/log"
)

// RunCycle runs one full polling cycle and returns its report.
//
// Fetches run in parallel; this goroutine alone filters, enriches and
// dispatches, so the seen-set and URL cache are never mutated concurrently.
// Batches are processed in completion order, so the relative order of events
// from different feeds is not deterministic.
func (c *Crawler) RunCycle(ctx context.Context) CycleReport {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	start := time.Now()
	report := CycleReport{
		ID:        uuid.NewString(),
		StartedAt: c.now(),
		Resources: len(c.resources),
	}
	ctx = pkgLog.WithTraceID(ctx, report.ID)
	c.seen.Sweep()

	c.l.Infof(ctx, "Starting Github API update for %d resource(s)", len(c.resources))

	for res := range c.fetchAll(ctx) {
		if res.err != nil {
			report.FetchFailed++
			c.metrics.fetches.WithLabelValues(string(res.resource.Kind), "failed").Inc()
			c.l.Warnf(ctx, "Fetching %s failed after %s: %v", res.resource, res.took.Truncate(time.Millisecond), res.err)
			continue
		}
		c.metrics.fetches.WithLabelValues(string(res.resource.Kind), "ok").Inc()
		c.processBatch(ctx, res, &report)
	}

	report.Duration = time.Since(start)
	c.metrics.cycleDuration.Observe(report.Duration.Seconds())
	c.recordCycle(report)

	c.l.Infof(ctx, "Github API update finished in %s: %d dispatched, %d duplicate, %d stale, %d failed fetch(es)",
		report.Duration.Truncate(time.Millisecond), report.Dispatched, report.Duplicates, report.Stale, report.FetchFailed)
	return report
}

func (c *Crawler) processBatch(ctx context.Context, res fetchResult, report *CycleReport) {
	events, errs := toEvents(res.events)
	report.Received += len(res.events)
	report.Invalid += len(errs)
	for _, err := range errs {
		c.l.Warnf(ctx, "Skipping malformed event from %s: %v", res.resource, err)
	}
	c.metrics.events.WithLabelValues(outcomeInvalid).Add(float64(len(errs)))

	result := c.filter.Accept(events, c.now())
	report.Stale += result.Stale
	report.Duplicates += result.Duplicates
	c.metrics.events.WithLabelValues(outcomeStale).Add(float64(result.Stale))
	c.metrics.events.WithLabelValues(outcomeDuplicate).Add(float64(result.Duplicates))
	c.metrics.events.WithLabelValues(outcomeAccepted).Add(float64(len(result.Accepted)))

	c.l.Debugf(ctx, "%s: %d event(s) received, %d new", res.resource, len(res.events), len(result.Accepted))

	for _, event := range result.Accepted {
		event = c.enricher.Enrich(ctx, event)
		c.dispatcher.Dispatch(ctx, event)
		report.Dispatched++
	}
}

func (c *Crawler) recordCycle(report CycleReport) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.cycles++
	c.lastCycle = report
}

// Stats returns a snapshot of the crawler state.
func (c *Crawler) Stats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return Stats{
		Resources:  len(c.resources),
		Consumers:  c.dispatcher.Len(),
		SeenEvents: c.seen.Len(),
		CachedURLs: c.cache.Len(),
		Cycles:     c.cycles,
		LastCycle:  c.lastCycle,
	}
}
