package eventbus

import (
	"RaceBus/internal/adapters/metrics"
	"RaceBus/internal/core/domain"
	"RaceBus/internal/core/ports"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	channelTopic = "topic"
	channelType  = "type"
)

// Option configures an InMemoryEventBus.
type Option func(*InMemoryEventBus)

// WithMetrics reports dispatch counters to m.
func WithMetrics(m ports.Metrics) Option {
	return func(b *InMemoryEventBus) {
		if m != nil {
			b.metrics = m
		}
	}
}

// InMemoryEventBus is a synchronous in-process pub/sub system with two channels:
// coarse topics keyed by domain.EventType, and structured payloads keyed by
// their Go type (see SubscribeListener and Trigger).
//
// Handlers run on the publisher's goroutine, in subscription order. They may
// publish again; no lock is held while they run.
type InMemoryEventBus struct {
	log     zerolog.Logger
	metrics ports.Metrics
	topics  *Registry[domain.EventType, ports.Callback]
	types   *Registry[reflect.Type, typedHandler]
}

var _ ports.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus creates a new, empty event bus
func NewInMemoryEventBus(baseLogger *zerolog.Logger, opts ...Option) *InMemoryEventBus {
	b := &InMemoryEventBus{
		log:     baseLogger.With().Str("component", "in_memory_bus").Logger(),
		metrics: metrics.Noop{},
		topics:  NewRegistry[domain.EventType, ports.Callback](),
		types:   NewRegistry[reflect.Type, typedHandler](),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers cb for topic. The returned handle must be released
// by the subscriber before it goes away.
func (b *InMemoryEventBus) Subscribe(topic domain.EventType, cb ports.Callback) ports.Subscription {
	if !topic.Valid() {
		b.log.Warn().Stringer("topic", topic).Msg("Subscribing to a topic outside the known set")
	}

	id := b.topics.Add(topic, cb)
	b.metrics.SetSubscriptions(channelTopic, b.topics.Count())
	b.log.Debug().Stringer("topic", topic).Str("subscription_id", id.String()).Msg("New handler subscribed to topic")

	return newSubscription(id,
		func() bool { return b.topics.Contains(topic, id) },
		func() bool {
			removed := b.topics.Remove(topic, id)
			if removed {
				b.metrics.SetSubscriptions(channelTopic, b.topics.Count())
				b.log.Debug().Stringer("topic", topic).Str("subscription_id", id.String()).Msg("Handler unsubscribed from topic")
			}
			return removed
		},
	)
}

// Unsubscribe releases sub. Nil, unknown or already released handles are ignored.
func (b *InMemoryEventBus) Unsubscribe(sub ports.Subscription) {
	if sub == nil {
		return
	}
	sub.Unsubscribe()
}

// Publish invokes every callback subscribed to topic.
// No subscribers is fine and not an error.
func (b *InMemoryEventBus) Publish(topic domain.EventType) {
	key := topic.String()
	b.metrics.Published(channelTopic, key)

	// Snapshot: changes made by the callbacks below only affect later publishes.
	callbacks := b.topics.Lookup(topic)
	if len(callbacks) == 0 {
		b.log.Debug().Str("topic", key).Msg("Published event with no subscribers")
		return
	}

	b.log.Debug().Str("topic", key).Int("handlers", len(callbacks)).Msg("Publishing event")
	for _, cb := range callbacks {
		b.invoke(channelTopic, key, cb)
	}
}

// SubscriberCount returns the number of live subscriptions for topic.
func (b *InMemoryEventBus) SubscriberCount(topic domain.EventType) int {
	return b.topics.Len(topic)
}

// invoke runs one handler and keeps a panic from reaching the publisher
// or the handlers after it.
func (b *InMemoryEventBus) invoke(channel, key string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.metrics.HandlerPanicked(channel, key)
			b.log.Error().
				Str("channel", channel).
				Str("key", key).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()

	fn()
	b.metrics.Delivered(channel, key)
}

// subscription is the handle given back to subscribers.
type subscription struct {
	id     uuid.UUID
	active func() bool
	remove func() bool
	once   sync.Once
}

func newSubscription(id uuid.UUID, active, remove func() bool) *subscription {
	return &subscription{id: id, active: active, remove: remove}
}

func (s *subscription) ID() uuid.UUID { return s.id }

func (s *subscription) Active() bool { return s.active() }

func (s *subscription) Unsubscribe() {
	s.once.Do(func() { s.remove() })
}
