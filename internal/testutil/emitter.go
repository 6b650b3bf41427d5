package testutil

import (
	"context"
	"sync"

	"github.com/invoisio/paymentledger/internal/event"
)

// CaptureEmitter records every emitted event in order for later assertion.
//
// Thread-safety: all methods are safe for concurrent use.
type CaptureEmitter struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

// NewCaptureEmitter creates an empty CaptureEmitter.
func NewCaptureEmitter() *CaptureEmitter {
	return &CaptureEmitter{}
}

// Emit implements event.Emitter. Returns the configured failure, if any,
// while still capturing the event.
func (c *CaptureEmitter) Emit(ctx context.Context, ev event.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return c.err
}

// Events returns a copy of everything emitted so far.
func (c *CaptureEmitter) Events() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.Event, len(c.events))
	copy(out, c.events)
	return out
}

// FailWith makes subsequent Emit calls return err.
// Used to verify that a failing sink never fails a recording.
func (c *CaptureEmitter) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}
