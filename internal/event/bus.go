package event

import (
	"context"
	"sync"
)

// Bus fans notifications out to in-process subscribers. It is the event
// half of the reconciliation interface: an embedding service subscribes
// once and receives every recorded payment without polling the store.
//
// Delivery is per-subscriber buffered; a subscriber that falls behind its
// buffer loses the slot for that event rather than stalling the recording
// path. Subscribers needing lossless history read the store instead.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber with the given buffer size and returns
// its channel plus a cancel function. Cancel is idempotent; after cancel
// the channel is closed.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Emit implements Emitter. Full subscriber buffers are skipped, never
// waited on.
func (b *Bus) Emit(ctx context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber buffer full; drop for this subscriber.
		}
	}
	return nil
}

// Close closes all subscriber channels. Subsequent Emit calls are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
