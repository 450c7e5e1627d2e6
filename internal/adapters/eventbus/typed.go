package eventbus

import (
	"RaceBus/internal/core/ports"
	"reflect"
)

// typedHandler is what the type-keyed registry stores. listener keeps the
// subscriber's identity for UnsubscribeListener; deliver knows the concrete T.
type typedHandler struct {
	listener any
	deliver  func(payload any)
}

func keyFor[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// typeName is the label used in logs and metrics. Named types are qualified
// with their full import path so two packages' "Event" types stay apart.
func typeName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// as converts back from the boxed payload. A nil interface payload
// comes back as the zero value of T.
func as[T any](payload any) T {
	v, _ := payload.(T)
	return v
}

// SubscribeListener registers l for every payload of type T.
// The bus does not look inside the payload: l decides what to react to.
func SubscribeListener[T any](b *InMemoryEventBus, l ports.Listener[T]) ports.Subscription {
	return subscribeTyped(b, l, func(payload any) { l.OnEvent(as[T](payload)) })
}

// SubscribeFunc registers fn for every payload of type T.
func SubscribeFunc[T any](b *InMemoryEventBus, fn func(T)) ports.Subscription {
	// Stored behind a pointer so the entry stays comparable.
	l := &funcListener[T]{fn: fn}
	return subscribeTyped[T](b, l, func(payload any) { fn(as[T](payload)) })
}

type funcListener[T any] struct {
	fn func(T)
}

func (f *funcListener[T]) OnEvent(payload T) { f.fn(payload) }

func subscribeTyped[T any](b *InMemoryEventBus, l ports.Listener[T], deliver func(any)) ports.Subscription {
	key := keyFor[T]()
	id := b.types.Add(key, typedHandler{listener: l, deliver: deliver})
	b.metrics.SetSubscriptions(channelType, b.types.Count())
	b.log.Debug().Str("payload_type", typeName(key)).Str("subscription_id", id.String()).Msg("New listener subscribed to payload type")

	return newSubscription(id,
		func() bool { return b.types.Contains(key, id) },
		func() bool {
			removed := b.types.Remove(key, id)
			if removed {
				b.metrics.SetSubscriptions(channelType, b.types.Count())
				b.log.Debug().Str("payload_type", typeName(key)).Str("subscription_id", id.String()).Msg("Listener unsubscribed from payload type")
			}
			return removed
		},
	)
}

// UnsubscribeListener removes the first registration of l for T.
// It is a no-op if l is not subscribed. Listeners whose dynamic type is not
// comparable cannot be matched by identity; release their handle instead.
func UnsubscribeListener[T any](b *InMemoryEventBus, l ports.Listener[T]) {
	if l == nil {
		return
	}
	key := keyFor[T]()
	if !reflect.TypeOf(l).Comparable() {
		b.log.Warn().Str("payload_type", typeName(key)).Msg("Listener is not comparable; use its subscription handle to unsubscribe")
		return
	}

	removed := b.types.RemoveFunc(key, func(h typedHandler) bool {
		other, ok := h.listener.(ports.Listener[T])
		if !ok || reflect.TypeOf(other) != reflect.TypeOf(l) {
			return false
		}
		return other == l
	})
	if removed {
		b.metrics.SetSubscriptions(channelType, b.types.Count())
		b.log.Debug().Str("payload_type", typeName(key)).Msg("Listener unsubscribed from payload type")
	}
}

// Trigger delivers payload to every listener subscribed to its static type T,
// in subscription order, on the caller's goroutine.
func Trigger[T any](b *InMemoryEventBus, payload T) {
	key := keyFor[T]()
	name := typeName(key)
	b.metrics.Published(channelType, name)

	handlers := b.types.Lookup(key)
	if len(handlers) == 0 {
		b.log.Debug().Str("payload_type", name).Msg("Triggered event with no listeners")
		return
	}

	b.log.Debug().Str("payload_type", name).Int("listeners", len(handlers)).Msg("Triggering event")
	for _, h := range handlers {
		b.invoke(channelType, name, func() { h.deliver(payload) })
	}
}

// ListenerCount returns the number of live listeners for payload type T.
func ListenerCount[T any](b *InMemoryEventBus) int {
	return b.types.Len(keyFor[T]())
}
