package ports

// Metrics receives dispatch counters from the bus.
type Metrics interface {
	// Published counts one publish on a channel ("topic" or "type") for key.
	Published(channel, key string)
	// Delivered counts one callback invocation.
	Delivered(channel, key string)
	// HandlerPanicked counts one recovered handler panic.
	HandlerPanicked(channel, key string)
	// SetSubscriptions reports the current number of live subscriptions.
	SetSubscriptions(channel string, n int)
}
