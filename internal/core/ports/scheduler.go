package ports

import "time"

// CancelFunc stops a scheduled task. It reports whether the task was
// stopped before it ran.
type CancelFunc func() bool

// Scheduler runs deferred work outside of the current dispatch.
// Components use it to model delays instead of blocking inside a handler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}
