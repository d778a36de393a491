package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git-commander/internal/model"
	"git-commander/pkg/github"
)

// feedPath maps a resource onto its events feed.
func feedPath(r model.Resource) (string, error) {
	switch r.Kind {
	case model.ResourceUser:
		if r.Name == "" {
			break
		}
		return github.UserEventsPath(r.Name), nil
	case model.ResourceOrg:
		if r.Name == "" {
			break
		}
		return github.OrgEventsPath(r.Name), nil
	case model.ResourceRepo:
		owner, name, ok := strings.Cut(r.Name, "/")
		if !ok || owner == "" || name == "" {
			break
		}
		return github.RepoEventsPath(owner, name), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidResource, r)
}

// fetchAll starts one fetch per resource and streams results back as each
// completes. The channel is closed once every fetch has finished; failures
// are reported in the result and never stop sibling fetches.
func (c *Crawler) fetchAll(ctx context.Context) <-chan fetchResult {
	results := make(chan fetchResult, len(c.resources))

	var g errgroup.Group
	if c.maxConcurrent > 0 {
		g.SetLimit(c.maxConcurrent)
	}

	go func() {
		defer close(results)
		for i, res := range c.resources {
			res := res
			path := c.paths[i]
			g.Go(func() error {
				start := time.Now()
				events, err := c.feed.ListEvents(ctx, path)
				results <- fetchResult{
					resource: res,
					events:   events,
					err:      err,
					took:     time.Since(start),
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return results
}

// toEvents converts raw feed records, dropping those with an unparseable
// timestamp.
func toEvents(raw []github.Event) ([]model.Event, []error) {
	events := make([]model.Event, 0, len(raw))
	var errs []error
	for _, r := range raw {
		created, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			errs = append(errs, fmt.Errorf("event %s: bad created_at %q: %w", r.ID, r.CreatedAt, err))
			continue
		}
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("event without id created at %s", r.CreatedAt))
			continue
		}
		events = append(events, model.Event{
			ID:        r.ID,
			Type:      r.Type,
			CreatedAt: created.UTC(),
			Actor:     r.Actor.Login,
			Repo:      model.Repo{Name: r.Repo.Name},
			Payload:   r.Payload,
		})
	}
	return events, errs
}
