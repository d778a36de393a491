package scheduler

import "errors"

var (
	ErrAlreadyRunning  = errors.New("scheduler already running")
	ErrInvalidInterval = errors.New("interval must be positive")
)
