package race

import (
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/core/domain"
	"sync"

	"github.com/rs/zerolog"
)

// RaceClient owns the start button. Pressing it announces COUNTDOWN;
// the button comes back once a STOP is published.
type RaceClient struct {
	log zerolog.Logger

	mu            sync.Mutex
	bus           *eventbus.InMemoryEventBus
	buttonEnabled bool
	subs          eventbus.Group
}

func NewRaceClient(baseLogger *zerolog.Logger) *RaceClient {
	return &RaceClient{
		log:           baseLogger.With().Str("component", "race_client").Logger(),
		buttonEnabled: true,
	}
}

func (c *RaceClient) Enable(bus *eventbus.InMemoryEventBus) {
	c.mu.Lock()
	c.bus = bus
	c.mu.Unlock()

	c.subs.Add(bus.Subscribe(domain.EventStop, c.restart))
}

// Disable unsubscribes the client. The start button no longer does anything.
func (c *RaceClient) Disable() {
	c.subs.Release()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bus = nil
}

// ButtonEnabled reports whether the start button is shown.
func (c *RaceClient) ButtonEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buttonEnabled
}

// PressStart announces COUNTDOWN. It returns false if the button is
// disabled or the client is not enabled.
func (c *RaceClient) PressStart() bool {
	c.mu.Lock()
	if !c.buttonEnabled || c.bus == nil {
		c.mu.Unlock()
		return false
	}
	c.buttonEnabled = false
	bus := c.bus
	c.mu.Unlock()

	c.log.Info().Msg("Start countdown pressed")
	Announce(bus, domain.EventCountdown)
	return true
}

func (c *RaceClient) restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttonEnabled = true
}
