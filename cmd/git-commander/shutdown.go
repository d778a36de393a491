package main

import (
	"context"
	"time"
)

const drainTimeout = 30 * time.Second

type drainer interface {
	Drain(ctx context.Context)
}

// drain flushes queued announcements after the last cycle finished. ctx is
// usually cancelled by then, so only its values are kept.
func drain(ctx context.Context, d drainer, timeout time.Duration) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	d.Drain(dctx)
}
