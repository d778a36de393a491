package crawler

import (
	"slices"
	"time"

	"git-commander/internal/model"
)

// Filter applies the recency horizon and the seen-set to feed batches.
type Filter struct {
	seen    *SeenSet
	horizon time.Duration
	grace   time.Duration
}

// NewFilter creates a Filter. Accepted ids stay in seen for at least grace
// past the moment their event leaves the horizon.
func NewFilter(seen *SeenSet, horizon, grace time.Duration) *Filter {
	return &Filter{seen: seen, horizon: horizon, grace: grace}
}

// retention is how long an accepted id must stay in the seen-set. An event
// stamped ahead of now stays within the horizon for longer, so the skew is
// added on top: the id always outlives created_at + horizon.
func (f *Filter) retention(ev model.Event, now time.Time) time.Duration {
	skew := ev.CreatedAt.Sub(now)
	if skew < 0 {
		skew = 0
	}
	return f.horizon + f.grace + skew
}

// Accept returns the new, recent events of batch oldest first.
//
// batch is in feed order (newest first). The age check runs before the seen
// lookup so that a stale event never enters the seen-set. batch is not
// modified.
func (f *Filter) Accept(batch []model.Event, now time.Time) FilterResult {
	ordered := slices.Clone(batch)
	slices.Reverse(ordered)
	slices.SortStableFunc(ordered, func(a, b model.Event) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	res := FilterResult{Accepted: make([]model.Event, 0, len(ordered))}
	for _, ev := range ordered {
		if ev.Age(now) > f.horizon {
			res.Stale++
			continue
		}

		if f.seen.Contains(ev.ID) {
			res.Duplicates++
			continue
		}

		f.seen.Add(ev.ID, f.retention(ev, now))
		res.Accepted = append(res.Accepted, ev)
	}

	return res
}
