package race

import (
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/core/domain"
	"RaceBus/internal/core/ports"
	"sync"

	"github.com/rs/zerolog"
)

// HUD is shown on START and hidden on STOP.
type HUD struct {
	log zerolog.Logger

	mu      sync.Mutex
	bus     *eventbus.InMemoryEventBus
	visible bool
	subs    map[domain.EventType]ports.Subscription
}

func NewHUD(baseLogger *zerolog.Logger) *HUD {
	return &HUD{
		log:  baseLogger.With().Str("component", "hud").Logger(),
		subs: make(map[domain.EventType]ports.Subscription),
	}
}

// Enable subscribes the HUD to START and STOP.
func (h *HUD) Enable(bus *eventbus.InMemoryEventBus) {
	start := bus.Subscribe(domain.EventStart, h.show)
	stop := bus.Subscribe(domain.EventStop, h.hide)

	h.mu.Lock()
	old := h.subs
	h.bus = bus
	h.subs = map[domain.EventType]ports.Subscription{
		domain.EventStart: start,
		domain.EventStop:  stop,
	}
	h.mu.Unlock()

	for _, sub := range old {
		sub.Unsubscribe()
	}
}

// Ignore releases the HUD's subscription to a single topic.
func (h *HUD) Ignore(topic domain.EventType) {
	h.mu.Lock()
	sub, ok := h.subs[topic]
	delete(h.subs, topic)
	h.mu.Unlock()

	if ok {
		sub.Unsubscribe()
	}
}

// Disable releases every subscription. The stop button no longer does anything.
func (h *HUD) Disable() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[domain.EventType]ports.Subscription)
	h.bus = nil
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Visible reports whether the HUD is displayed.
func (h *HUD) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// PressStop hides the HUD and announces STOP. It returns false when the
// HUD is not displayed or not enabled, since the stop button is only shown with it.
func (h *HUD) PressStop() bool {
	h.mu.Lock()
	if !h.visible || h.bus == nil {
		h.mu.Unlock()
		return false
	}
	h.visible = false
	bus := h.bus
	h.mu.Unlock()

	h.log.Info().Msg("Stop pressed")
	Announce(bus, domain.EventStop)
	return true
}

func (h *HUD) show() {
	h.setVisible(true)
}

func (h *HUD) hide() {
	h.setVisible(false)
}

func (h *HUD) setVisible(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visible = v
	h.log.Debug().Bool("visible", v).Msg("HUD toggled")
}
