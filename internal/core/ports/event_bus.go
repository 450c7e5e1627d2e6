package ports

import (
	"RaceBus/internal/core/domain"

	"github.com/google/uuid"
)

// Callback handles a coarse topic. Topics carry no payload.
type Callback func()

// Listener is the capability any component implements to receive
// structured events of payload type T.
type Listener[T any] interface {
	OnEvent(payload T)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc[T any] func(payload T)

// OnEvent calls f(payload).
func (f ListenerFunc[T]) OnEvent(payload T) { f(payload) }

// Subscription is the handle returned by every Subscribe call.
// Releasing it is the only way a subscriber leaves the bus.
type Subscription interface {
	// ID returns the unique handle identifier
	ID() uuid.UUID

	// Unsubscribe removes the subscription. Calling it more than once is a no-op.
	Unsubscribe()

	// Active reports whether the subscription still receives events.
	Active() bool
}

// EventBus defines the coarse, topic-keyed channel of our in-process pub/sub system.
// The structured channel is generic and lives next to the adapter.
type EventBus interface {
	// Publish invokes every callback subscribed to topic, in subscription order
	Publish(topic domain.EventType)

	// Subscribe registers a callback for a specific topic
	Subscribe(topic domain.EventType, cb Callback) Subscription

	// Unsubscribe releases a subscription. Unknown or released handles are ignored.
	Unsubscribe(sub Subscription)
}
