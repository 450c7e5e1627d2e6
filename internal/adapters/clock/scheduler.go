package clock

import (
	"RaceBus/internal/core/ports"
	"time"
)

// Scheduler runs deferred work on the runtime timer.
// Callbacks fire on their own goroutine.
type Scheduler struct{}

var _ ports.Scheduler = Scheduler{}

// NewScheduler returns a wall-clock scheduler.
func NewScheduler() Scheduler {
	return Scheduler{}
}

func (Scheduler) AfterFunc(d time.Duration, f func()) ports.CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}
