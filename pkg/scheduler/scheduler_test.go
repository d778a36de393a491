package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	pkgLog "git-commander/pkg/log"
)

func TestStart_InvalidInterval(t *testing.T) {
	s := New(pkgLog.NewNop(), func(ctx context.Context) {})
	if err := s.Start(context.Background(), 0, false); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Start() error = %v, want ErrInvalidInterval", err)
	}
	if s.Running() {
		t.Error("scheduler should not be running")
	}
}

func TestStart_Twice(t *testing.T) {
	s := New(pkgLog.NewNop(), func(ctx context.Context) {})
	if err := s.Start(context.Background(), time.Hour, false); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	if err := s.Start(context.Background(), time.Hour, false); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestStart_Immediate(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := New(pkgLog.NewNop(), func(ctx context.Context) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	if err := s.Start(context.Background(), time.Hour, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("immediate run did not happen")
	}
}

func TestStart_NotImmediate(t *testing.T) {
	var runs atomic.Int32
	s := New(pkgLog.NewNop(), func(ctx context.Context) { runs.Add(1) })
	if err := s.Start(context.Background(), time.Hour, false); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	if runs.Load() != 0 {
		t.Errorf("runs = %d, want 0 before the first tick", runs.Load())
	}
}

func TestRunsNeverOverlap(t *testing.T) {
	var active, maxActive, runs atomic.Int32
	s := New(pkgLog.NewNop(), func(ctx context.Context) {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		time.Sleep(25 * time.Millisecond)
		active.Add(-1)
		runs.Add(1)
	})

	if err := s.Start(context.Background(), 5*time.Millisecond, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	if maxActive.Load() != 1 {
		t.Errorf("max concurrent runs = %d, want 1", maxActive.Load())
	}
	if got := runs.Load(); got < 2 {
		t.Errorf("runs = %d, want the loop to keep going after a slow run", got)
	}
}

func TestStop_WaitsWithoutCancelling(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	var cancelled atomic.Bool

	s := New(pkgLog.NewNop(), func(ctx context.Context) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		if ctx.Err() != nil {
			cancelled.Store(true)
		}
		finished.Store(true)
	})
	if err := s.Start(context.Background(), time.Hour, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	<-started
	s.Stop()

	if !finished.Load() {
		t.Error("Stop() returned before the run finished")
	}
	if cancelled.Load() {
		t.Error("run context was cancelled by Stop()")
	}
	if s.Running() {
		t.Error("Running() = true after Stop()")
	}
}

func TestStop_NoRunsAfterStop(t *testing.T) {
	var runs atomic.Int32
	s := New(pkgLog.NewNop(), func(ctx context.Context) { runs.Add(1) })
	if err := s.Start(context.Background(), 5*time.Millisecond, false); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs.Load() != after {
		t.Errorf("runs went from %d to %d after Stop()", after, runs.Load())
	}
}

func TestStop_Restart(t *testing.T) {
	s := New(pkgLog.NewNop(), func(ctx context.Context) {})
	s.Stop()

	if err := s.Start(context.Background(), time.Hour, false); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Stop()
	if err := s.Start(context.Background(), time.Hour, false); err != nil {
		t.Errorf("restart error = %v", err)
	}
	s.Stop()
}
