package metrics

import "RaceBus/internal/core/ports"

// Noop discards every measurement. It is the bus default.
type Noop struct{}

var _ ports.Metrics = Noop{}

func (Noop) Published(string, string)       {}
func (Noop) Delivered(string, string)       {}
func (Noop) HandlerPanicked(string, string) {}
func (Noop) SetSubscriptions(string, int)   {}
