package scheduler

import (
	"context"
	"sync"
	"time"

	pkgLog "git-commander/pkg/log"
)

// RunFunc is one unit of periodic work.
type RunFunc func(ctx context.Context)

// Scheduler calls a RunFunc on a fixed interval. Runs never overlap: a run
// that outlasts the interval delays the next one, and ticks that arrive
// meanwhile collapse into a single pending tick.
type Scheduler struct {
	l   pkgLog.Logger
	run RunFunc

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a stopped Scheduler.
func New(l pkgLog.Logger, run RunFunc) *Scheduler {
	return &Scheduler{l: l, run: run}
}

// Start launches the loop. When immediate is true the first run starts right
// away instead of after one interval.
//
// Runs receive a context that keeps ctx's values but not its cancellation,
// so Stop or cancelling ctx never interrupts a run in progress.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration, immediate bool) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(loopCtx, interval, immediate, s.done)

	s.l.Infof(ctx, "Scheduler started with interval %s", interval)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, immediate bool, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runCtx := context.WithoutCancel(ctx)
	if immediate {
		s.run(runCtx)
	}

	for {
		// Stop wins over a tick that is ready at the same time.
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s.run(runCtx)
		}
	}
}

// Stop prevents further runs and waits for the one in progress, if any.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.l.Info(context.Background(), "Scheduler stopped")
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
