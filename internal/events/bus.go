// Package events is a synchronous in-process event bus. Listeners run in
// subscription order on the publisher's goroutine and context, so they take
// part in whatever transaction the publisher holds.
package events

import (
	"context"
	"fmt"
	"sync"
)

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]Listener)}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish stops at the first listener error and returns it.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	listeners := b.listeners[event.Name()]
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := l(ctx, event); err != nil {
			return fmt.Errorf("handling %s: %w", event.Name(), err)
		}
	}

	return nil
}
