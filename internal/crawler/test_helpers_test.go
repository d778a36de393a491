package crawler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git-commander/internal/model"
	"git-commander/pkg/github"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

var errFeedDown = errors.New("feed down")

// mockFeed serves canned batches keyed by feed path.
type mockFeed struct {
	mu      sync.Mutex
	batches map[string][]github.Event
	errs    map[string]error
	calls   map[string]int
	delay   time.Duration

	active    atomic.Int32
	maxActive atomic.Int32
}

func newMockFeed() *mockFeed {
	return &mockFeed{
		batches: map[string][]github.Event{},
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (f *mockFeed) set(path string, events ...github.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches[path] = events
}

func (f *mockFeed) fail(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[path] = err
}

func (f *mockFeed) ListEvents(ctx context.Context, path string) ([]github.Event, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		cur := f.maxActive.Load()
		if n <= cur || f.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.batches[path], nil
}

// mockShortener returns https://git.io/<repo> or fails.
type mockShortener struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func newMockShortener() *mockShortener {
	return &mockShortener{calls: map[string]int{}}
}

func (s *mockShortener) Shorten(ctx context.Context, fullURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[fullURL]++
	if s.err != nil {
		return "", s.err
	}
	return "https://git.io/" + strings.ReplaceAll(strings.TrimPrefix(fullURL, "https://github.com/"), "/", "-"), nil
}

func (s *mockShortener) callCount(fullURL string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[fullURL]
}

// recorder is a consumer that keeps every event it is handed.
type recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recorder) Notify(ctx context.Context, event model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.ID)
	}
	return out
}

var testNow = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

func ghEvent(id, repo string, created time.Time) github.Event {
	return github.Event{
		ID:        id,
		Type:      "PushEvent",
		CreatedAt: created.Format(time.RFC3339),
		Actor:     github.Actor{Login: "alice"},
		Repo:      github.Repo{Name: repo},
	}
}

func modelEvent(id string, created time.Time) model.Event {
	return model.Event{ID: id, Type: "PushEvent", CreatedAt: created, Repo: model.Repo{Name: "alice/tools"}}
}

func newTestCrawler(t *testing.T, feed FeedClient, shortener Shortener, resources ...model.Resource) (*Crawler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := New(&mockLogger{}, feed, shortener, Config{
		Resources:  resources,
		WebURL:     "https://github.com",
		Recency:    time.Hour,
		SeenGrace:  10 * time.Minute,
		Registerer: reg,
		Now:        func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, reg
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
