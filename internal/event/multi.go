package event

import (
	"context"
	"errors"
)

// Multi emits to every wrapped emitter. All emitters are attempted even if
// an earlier one fails; errors are joined.
type Multi []Emitter

// Emit implements Emitter.
func (m Multi) Emit(ctx context.Context, ev Event) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
