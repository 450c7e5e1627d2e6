// Package race holds the game components that drive the
// countdown -> start -> stop workflow through the event bus.
// None of them holds a reference to another; they only share the bus.
package race

import (
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/core/domain"
)

// Announce publishes t on the topic channel and triggers the matching
// GameStatesEvent on the structured channel, so subscribers of either
// style observe the state change.
func Announce(bus *eventbus.InMemoryEventBus, t domain.EventType) {
	bus.Publish(t)
	eventbus.Trigger(bus, domain.NewGameStatesEvent(t))
}
