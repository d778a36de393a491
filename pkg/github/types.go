package github

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrUnexpectedStatus is returned for any non-2xx feed response.
	ErrUnexpectedStatus = errors.New("unexpected status from github")
)

// Config configures Client.
type Config struct {
	BaseURL       string
	Token         string
	TokenInHeader bool          // send the token as a bearer header instead of ?access_token=
	Timeout       time.Duration // per request
	RatePerSecond float64       // outbound request pacing, <= 0 disables it
	Burst         int
}

// Event is one element of an events feed as returned by the API.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	CreatedAt string          `json:"created_at"`
	Actor     Actor           `json:"actor"`
	Repo      Repo            `json:"repo"`
	Payload   json.RawMessage `json:"payload"`
}

// Actor is the user that triggered an event.
type Actor struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Repo is the repository reference attached to an event.
type Repo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // owner/name
	URL  string `json:"url"`
}
