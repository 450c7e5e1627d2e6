package eventbus

import (
	"RaceBus/internal/core/ports"
	"sync"
)

// Group collects subscription handles so an owner can release all of them
// in one call, typically with defer or from its Disable method.
// The zero value is ready to use.
type Group struct {
	mu   sync.Mutex
	subs []ports.Subscription
}

// Add keeps sub in the group and returns it.
func (g *Group) Add(sub ports.Subscription) ports.Subscription {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.subs = append(g.subs, sub)
	return sub
}

// Len returns the number of handles held.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.subs)
}

// Release unsubscribes every handle in reverse order and empties the group.
func (g *Group) Release() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Unsubscribe()
	}
}
