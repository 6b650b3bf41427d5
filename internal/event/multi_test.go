package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEmitter counts emissions and optionally fails.
type recordingEmitter struct {
	calls int
	err   error
}

func (r *recordingEmitter) Emit(ctx context.Context, ev Event) error {
	r.calls++
	return r.err
}

func TestMultiEmitsToAll(t *testing.T) {
	a := &recordingEmitter{}
	b := &recordingEmitter{}

	m := Multi{a, b}
	require.NoError(t, m.Emit(context.Background(), testEvent("evt-1", "INV-001")))

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestMultiContinuesPastFailures(t *testing.T) {
	sinkErr := errors.New("sink down")
	a := &recordingEmitter{err: sinkErr}
	b := &recordingEmitter{}

	m := Multi{a, b}
	err := m.Emit(context.Background(), testEvent("evt-1", "INV-001"))

	// The failure is reported, but the second emitter still ran.
	require.Error(t, err)
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 1, b.calls)
}

func TestMultiEmpty(t *testing.T) {
	var m Multi
	assert.NoError(t, m.Emit(context.Background(), testEvent("evt-1", "INV-001")))
}
