// Package membus implements the event bus port as a synchronous in-process
// dispatcher. Handlers run on the publisher's goroutine in subscription
// order, so every state transition is observable in call order.
package membus

import (
	"context"
	"sync"

	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

type subscription struct {
	id      int
	handler eventbus.Handler
}

// Bus is a synchronous in-memory event bus.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[eventbus.Kind][]subscription
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[eventbus.Kind][]subscription)}
}

// Subscribe registers a handler for one event kind.
func (b *Bus) Subscribe(kind eventbus.Kind, h eventbus.Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs[kind] = append(b.subs[kind], subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[kind]
		for i, s := range subs {
			if s.id == id {
				b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to subscribers of its kind, synchronously and in
// subscription order.
func (b *Bus) Publish(ctx context.Context, ev eventbus.Event) {
	b.mu.RLock()
	subs := b.subs[ev.Kind()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(ctx, ev)
	}
}
