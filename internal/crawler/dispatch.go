package crawler

import (
	"context"
	"fmt"
	"sync"

	"git-commander/internal/model"
	pkgLog "git-commander/pkg/log"
)

// Dispatcher delivers events to consumers in registration order.
type Dispatcher struct {
	mu        sync.RWMutex
	consumers []Consumer
	l         pkgLog.Logger
	metrics   *metrics
}

func newDispatcher(l pkgLog.Logger, m *metrics) *Dispatcher {
	return &Dispatcher{l: l, metrics: m}
}

func (d *Dispatcher) Register(c Consumer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.consumers = append(d.consumers, c)
}

func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.consumers)
}

// Dispatch hands event to every consumer and returns how many succeeded.
// A failing or panicking consumer does not stop delivery to the rest.
func (d *Dispatcher) Dispatch(ctx context.Context, event model.Event) int {
	d.mu.RLock()
	consumers := make([]Consumer, len(d.consumers))
	copy(consumers, d.consumers)
	d.mu.RUnlock()

	delivered := 0
	for i, c := range consumers {
		if err := d.notify(ctx, c, event); err != nil {
			name := consumerName(c)
			d.l.Errorf(ctx, "Consumer #%d (%s) failed on event %s: %v", i, name, event.ID, err)
			d.metrics.dispatchFailures.WithLabelValues(name).Inc()
			continue
		}
		delivered++
	}
	return delivered
}

func (d *Dispatcher) notify(ctx context.Context, c Consumer, event model.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("consumer panicked: %v", r)
		}
	}()
	return c.Notify(ctx, event)
}

// consumerName labels a consumer in logs and metrics.
func consumerName(c Consumer) string {
	if n, ok := c.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}
