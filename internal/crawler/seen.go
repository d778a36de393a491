package crawler

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// SeenSet remembers dispatched event ids, each for its own retention.
type SeenSet struct {
	ids *ttlcache.Cache[string, struct{}]
}

// NewSeenSet creates a set. capacity <= 0 disables the size bound.
func NewSeenSet(capacity int) *SeenSet {
	opts := []ttlcache.Option[string, struct{}]{
		ttlcache.WithDisableTouchOnHit[string, struct{}](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, struct{}](uint64(capacity)))
	}
	return &SeenSet{ids: ttlcache.New[string, struct{}](opts...)}
}

// Contains reports whether id was added and has not expired.
func (s *SeenSet) Contains(id string) bool {
	return s.ids.Has(id)
}

// Add remembers id for ttl. ttl <= 0 keeps it forever.
func (s *SeenSet) Add(id string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.ids.Set(id, struct{}{}, ttl)
}

// Sweep drops expired ids.
func (s *SeenSet) Sweep() {
	s.ids.DeleteExpired()
}

func (s *SeenSet) Len() int {
	return s.ids.Len()
}
