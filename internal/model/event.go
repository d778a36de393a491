package model

import (
	"encoding/json"
	"time"
)

// Event is one activity item taken from a feed.
type Event struct {
	ID        string          // Stable across fetches of the same activity
	Type      string          // e.g. PushEvent, ReleaseEvent
	CreatedAt time.Time       // UTC
	Actor     string          // Login of the acting user
	Repo      Repo            // Owning repository
	Payload   json.RawMessage // Type specific, passed through untouched
}

// Repo is the repository an event belongs to.
type Repo struct {
	Name   string // owner/name
	WebURL string // Attached by the enricher, shortened when possible
}

// Age returns how old the event is at now.
func (e Event) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}
