package crawler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"git-commander/internal/model"
	"git-commander/pkg/github"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		feed    FeedClient
		cfg     Config
		wantErr error
	}{
		{name: "nil feed", feed: nil, wantErr: ErrNilFeedClient},
		{name: "negative recency", feed: newMockFeed(), cfg: Config{Recency: -time.Second}, wantErr: ErrNegativeRecency},
		{
			name:    "repo without owner",
			feed:    newMockFeed(),
			cfg:     Config{Resources: []model.Resource{{Kind: model.ResourceRepo, Name: "tools"}}},
			wantErr: ErrInvalidResource,
		},
		{
			name:    "unknown kind",
			feed:    newMockFeed(),
			cfg:     Config{Resources: []model.Resource{{Kind: "team", Name: "core"}}},
			wantErr: ErrInvalidResource,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(&mockLogger{}, tc.feed, nil, tc.cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunCycle_DispatchesNewEventsOnce(t *testing.T) {
	feed := newMockFeed()
	feed.set("/users/alice/events",
		ghEvent("3", "alice/tools", testNow.Add(-time.Minute)),
		ghEvent("2", "alice/tools", testNow.Add(-2*time.Minute)),
		ghEvent("1", "alice/tools", testNow.Add(-3*time.Minute)),
	)
	sh := newMockShortener()
	c, _ := newTestCrawler(t, feed, sh, model.Resource{Kind: model.ResourceUser, Name: "alice"})
	rec := &recorder{}
	c.Register(rec)

	report := c.RunCycle(context.Background())
	if report.Dispatched != 3 || report.Received != 3 {
		t.Errorf("report = %+v", report)
	}
	if !equalIDs(rec.ids(), []string{"1", "2", "3"}) {
		t.Errorf("dispatched %v, want [1 2 3]", rec.ids())
	}
	for _, e := range rec.events {
		if e.Repo.WebURL != "https://git.io/alice-tools" {
			t.Errorf("event %s WebURL = %q", e.ID, e.Repo.WebURL)
		}
		if e.Actor != "alice" {
			t.Errorf("event %s Actor = %q", e.ID, e.Actor)
		}
	}
	if n := sh.callCount("https://github.com/alice/tools"); n != 1 {
		t.Errorf("shortener called %d times, want 1", n)
	}

	report = c.RunCycle(context.Background())
	if report.Dispatched != 0 || report.Duplicates != 3 {
		t.Errorf("second cycle report = %+v", report)
	}
	if len(rec.ids()) != 3 {
		t.Errorf("duplicate delivery: %v", rec.ids())
	}

	stats := c.Stats()
	if stats.Cycles != 2 || stats.SeenEvents != 3 || stats.CachedURLs != 1 || stats.Consumers != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunCycle_OverlappingFeeds(t *testing.T) {
	feed := newMockFeed()
	shared := ghEvent("42", "acme/api", testNow.Add(-time.Minute))
	feed.set("/users/alice/events", shared)
	feed.set("/orgs/acme/events", shared)
	feed.set("/repos/acme/api/events", shared)

	c, _ := newTestCrawler(t, feed, nil,
		model.Resource{Kind: model.ResourceUser, Name: "alice"},
		model.Resource{Kind: model.ResourceOrg, Name: "acme"},
		model.Resource{Kind: model.ResourceRepo, Name: "acme/api"},
	)
	rec := &recorder{}
	c.Register(rec)

	report := c.RunCycle(context.Background())
	if !equalIDs(rec.ids(), []string{"42"}) {
		t.Errorf("dispatched %v, want [42]", rec.ids())
	}
	if report.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", report.Duplicates)
	}
}

func TestRunCycle_ResourceIsolation(t *testing.T) {
	feed := newMockFeed()
	feed.fail("/users/bob/events", errFeedDown)
	feed.set("/users/alice/events", ghEvent("1", "alice/tools", testNow.Add(-time.Minute)))

	c, reg := newTestCrawler(t, feed, nil,
		model.Resource{Kind: model.ResourceUser, Name: "bob"},
		model.Resource{Kind: model.ResourceUser, Name: "alice"},
	)
	rec := &recorder{}
	c.Register(rec)

	report := c.RunCycle(context.Background())
	if report.FetchFailed != 1 {
		t.Errorf("FetchFailed = %d, want 1", report.FetchFailed)
	}
	if !equalIDs(rec.ids(), []string{"1"}) {
		t.Errorf("dispatched %v, want [1]", rec.ids())
	}
	if v := testutil.ToFloat64(c.metrics.fetches.WithLabelValues("user", "failed")); v != 1 {
		t.Errorf("failed fetches = %v, want 1", v)
	}
	if n, err := testutil.GatherAndCount(reg, "git_commander_feed_fetches_total"); err != nil || n != 2 {
		t.Errorf("GatherAndCount() = %d, %v", n, err)
	}
}

func TestRunCycle_StaleAndInvalidEvents(t *testing.T) {
	feed := newMockFeed()
	bad := ghEvent("bad", "alice/tools", testNow)
	bad.CreatedAt = "yesterday"
	feed.set("/users/alice/events",
		ghEvent("new", "alice/tools", testNow.Add(-time.Minute)),
		bad,
		ghEvent("old", "alice/tools", testNow.Add(-2*time.Hour)),
	)

	c, _ := newTestCrawler(t, feed, nil, model.Resource{Kind: model.ResourceUser, Name: "alice"})
	rec := &recorder{}
	c.Register(rec)

	report := c.RunCycle(context.Background())
	if report.Invalid != 1 || report.Stale != 1 || report.Dispatched != 1 {
		t.Errorf("report = %+v", report)
	}
	if !equalIDs(rec.ids(), []string{"new"}) {
		t.Errorf("dispatched %v, want [new]", rec.ids())
	}
	if c.seen.Contains("old") || c.seen.Contains("bad") {
		t.Error("rejected events must not enter the seen-set")
	}
}

func TestRunCycle_UnknownTypeIsDispatched(t *testing.T) {
	feed := newMockFeed()
	ev := ghEvent("1", "alice/tools", testNow.Add(-time.Minute))
	ev.Type = "SponsorshipEvent"
	feed.set("/users/alice/events", ev)

	c, _ := newTestCrawler(t, feed, nil, model.Resource{Kind: model.ResourceUser, Name: "alice"})
	rec := &recorder{}
	c.Register(rec)
	c.RunCycle(context.Background())

	if len(rec.events) != 1 || rec.events[0].Type != "SponsorshipEvent" {
		t.Errorf("got %+v", rec.events)
	}
}

func TestRunCycle_NoOverlap(t *testing.T) {
	feed := newMockFeed()
	feed.delay = 30 * time.Millisecond
	c, _ := newTestCrawler(t, feed, nil, model.Resource{Kind: model.ResourceUser, Name: "alice"})

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RunCycle(context.Background())
		}()
	}
	wg.Wait()

	if got := feed.maxActive.Load(); got != 1 {
		t.Errorf("max concurrent fetches = %d, want 1", got)
	}
	if c.Stats().Cycles != 3 {
		t.Errorf("Cycles = %d, want 3", c.Stats().Cycles)
	}
}

func TestRunCycle_FetchesInParallel(t *testing.T) {
	feed := newMockFeed()
	feed.delay = 50 * time.Millisecond
	c, _ := newTestCrawler(t, feed, nil,
		model.Resource{Kind: model.ResourceUser, Name: "a"},
		model.Resource{Kind: model.ResourceUser, Name: "b"},
		model.Resource{Kind: model.ResourceUser, Name: "c"},
	)

	c.RunCycle(context.Background())
	if got := feed.maxActive.Load(); got < 2 {
		t.Errorf("max concurrent fetches = %d, want parallel fetches", got)
	}
}

func TestFeedPath(t *testing.T) {
	tests := []struct {
		res  model.Resource
		want string
	}{
		{model.Resource{Kind: model.ResourceUser, Name: "alice"}, "/users/alice/events"},
		{model.Resource{Kind: model.ResourceRepo, Name: "alice/tools"}, "/repos/alice/tools/events"},
		{model.Resource{Kind: model.ResourceOrg, Name: "acme"}, "/orgs/acme/events"},
	}
	for _, tc := range tests {
		got, err := feedPath(tc.res)
		if err != nil || got != tc.want {
			t.Errorf("feedPath(%s) = %q, %v; want %q", tc.res, got, err, tc.want)
		}
	}
}

func TestToEvents(t *testing.T) {
	raw := []github.Event{
		ghEvent("1", "alice/tools", testNow),
		{ID: "2", CreatedAt: "not a time"},
		{ID: "", CreatedAt: testNow.Format(time.RFC3339)},
	}
	events, errs := toEvents(raw)
	if len(events) != 1 || len(errs) != 2 {
		t.Fatalf("got %d events, %d errors", len(events), len(errs))
	}
	if !events[0].CreatedAt.Equal(testNow) || events[0].Repo.Name != "alice/tools" {
		t.Errorf("converted event = %+v", events[0])
	}
}
