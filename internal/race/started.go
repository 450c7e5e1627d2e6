package race

import (
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/core/domain"
	"RaceBus/internal/core/ports"
)

// OnStarted returns a channel signalled when START is announced.
// It listens on the structured channel, which Announce triggers last, so
// subscribe it after the other components: by the time it fires every
// coarse subscriber and every earlier listener has handled START.
// The channel holds at most one pending signal.
func OnStarted(bus *eventbus.InMemoryEventBus) (<-chan struct{}, ports.Subscription) {
	started := make(chan struct{}, 1)
	sub := eventbus.SubscribeFunc(bus, func(e domain.GameStatesEvent) {
		if e.Type != domain.EventStart {
			return
		}
		select {
		case started <- struct{}{}:
		default:
		}
	})
	return started, sub
}
