package crawler

import "errors"

var (
	ErrNilFeedClient   = errors.New("feed client is required")
	ErrInvalidResource = errors.New("invalid resource")
	ErrNegativeRecency = errors.New("recency horizon must not be negative")
)
