package race

import (
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/core/domain"
	"RaceBus/internal/core/ports"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CountdownState is the timer's state machine ENUM
type CountdownState int

const (
	CountdownIdle CountdownState = iota
	CountdownRunning
	CountdownDone
)

func (s CountdownState) String() string {
	switch s {
	case CountdownIdle:
		return "idle"
	case CountdownRunning:
		return "running"
	case CountdownDone:
		return "done"
	default:
		return "unknown"
	}
}

// CountdownTimer listens for GameStatesEvent. On COUNTDOWN it counts down
// one step per tick and announces START when it reaches zero. STOP or
// RESTART puts it back to idle, cancelling a countdown in progress.
type CountdownTimer struct {
	log       zerolog.Logger
	scheduler ports.Scheduler
	steps     int
	tick      time.Duration

	mu         sync.Mutex
	bus        *eventbus.InMemoryEventBus
	state      CountdownState
	remaining  int
	cancel     ports.CancelFunc
	generation uint64
	subs       eventbus.Group
}

// NewCountdownTimer creates a timer that counts steps ticks before START.
func NewCountdownTimer(scheduler ports.Scheduler, steps int, tick time.Duration, baseLogger *zerolog.Logger) *CountdownTimer {
	return &CountdownTimer{
		log:       baseLogger.With().Str("component", "countdown_timer").Logger(),
		scheduler: scheduler,
		steps:     steps,
		tick:      tick,
	}
}

// Enable subscribes the timer to the bus.
func (t *CountdownTimer) Enable(bus *eventbus.InMemoryEventBus) {
	t.mu.Lock()
	t.bus = bus
	t.mu.Unlock()

	t.subs.Add(eventbus.SubscribeListener[domain.GameStatesEvent](bus, t))
}

// Disable unsubscribes the timer and drops any pending tick.
func (t *CountdownTimer) Disable() {
	t.subs.Release()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.state = CountdownIdle
}

// OnEvent implements ports.Listener.
func (t *CountdownTimer) OnEvent(e domain.GameStatesEvent) {
	switch e.Type {
	case domain.EventCountdown:
		t.start()
	case domain.EventStop, domain.EventRestart:
		t.reset(e.Type)
	}
}

// State returns the current state.
func (t *CountdownTimer) State() CountdownState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining returns the number of steps left in the countdown.
func (t *CountdownTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *CountdownTimer) start() {
	t.mu.Lock()
	if t.state != CountdownIdle {
		t.mu.Unlock()
		t.log.Debug().Stringer("state", t.State()).Msg("Ignoring COUNTDOWN, timer is busy")
		return
	}

	t.state = CountdownRunning
	t.remaining = t.steps
	t.generation++
	gen := t.generation
	t.log.Info().Int("steps", t.steps).Dur("tick", t.tick).Msg("Countdown started")

	if t.remaining <= 0 {
		t.mu.Unlock()
		t.finish(gen)
		return
	}
	t.scheduleLocked(gen)
	t.mu.Unlock()
}

func (t *CountdownTimer) reset(reason domain.EventType) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == CountdownIdle {
		return
	}
	t.stopLocked()
	t.state = CountdownIdle
	t.remaining = 0
	t.log.Info().Stringer("reason", reason).Msg("Countdown reset")
}

// stopLocked invalidates the pending tick. Caller holds t.mu.
func (t *CountdownTimer) stopLocked() {
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *CountdownTimer) scheduleLocked(gen uint64) {
	t.cancel = t.scheduler.AfterFunc(t.tick, func() { t.onTick(gen) })
}

func (t *CountdownTimer) onTick(gen uint64) {
	t.mu.Lock()
	if gen != t.generation || t.state != CountdownRunning {
		t.mu.Unlock()
		return
	}

	t.remaining--
	t.log.Debug().Int("remaining", t.remaining).Msg("Countdown tick")
	if t.remaining > 0 {
		t.scheduleLocked(gen)
		t.mu.Unlock()
		return
	}
	t.cancel = nil
	t.mu.Unlock()

	t.finish(gen)
}

// finish announces START. It must run without t.mu held: the announcement
// is dispatched synchronously and comes back to OnEvent.
func (t *CountdownTimer) finish(gen uint64) {
	t.mu.Lock()
	if gen != t.generation || t.state != CountdownRunning {
		t.mu.Unlock()
		return
	}
	t.state = CountdownDone
	bus := t.bus
	t.mu.Unlock()

	t.log.Info().Msg("Countdown finished, announcing START")
	Announce(bus, domain.EventStart)
}
