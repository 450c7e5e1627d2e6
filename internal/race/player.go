package race

import (
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/core/domain"
	"sync"

	"github.com/rs/zerolog"
)

const (
	StatusGameStarted = "Game Started"
	StatusStopped     = "Stopped"
)

// PlayerController tracks the race status from GameStatesEvent.
type PlayerController struct {
	log zerolog.Logger

	mu     sync.Mutex
	status string
	subs   eventbus.Group
}

func NewPlayerController(baseLogger *zerolog.Logger) *PlayerController {
	return &PlayerController{
		log: baseLogger.With().Str("component", "player_controller").Logger(),
	}
}

func (p *PlayerController) Enable(bus *eventbus.InMemoryEventBus) {
	p.subs.Add(eventbus.SubscribeListener[domain.GameStatesEvent](bus, p))
}

func (p *PlayerController) Disable() {
	p.subs.Release()
}

// OnEvent implements ports.Listener.
func (p *PlayerController) OnEvent(e domain.GameStatesEvent) {
	switch e.Type {
	case domain.EventStart:
		p.setStatus(StatusGameStarted)
	case domain.EventStop:
		p.setStatus(StatusStopped)
	}
}

// Status returns the last status, empty before any race.
func (p *PlayerController) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *PlayerController) setStatus(s string) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
	p.log.Info().Str("status", s).Msg("Player status changed")
}
