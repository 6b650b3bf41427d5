package event

import (
	"context"
	"log/slog"
)

// LogEmitter writes each notification as a structured log line. This is the
// default sink for the CLI: an operator tailing the log sees the same
// payload a programmatic subscriber would.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter creates a LogEmitter. A nil logger uses slog.Default().
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

// Emit implements Emitter.
func (e *LogEmitter) Emit(ctx context.Context, ev Event) error {
	e.logger.InfoContext(ctx, "event emitted",
		"event_id", ev.ID,
		"topics", ev.Topics[0]+"."+ev.Topics[1],
		"invoice_id", ev.Record.InvoiceID,
		"payer", ev.Record.Payer,
		"asset", ev.Record.Asset.String(),
		"amount", ev.Record.Amount.String(),
		"timestamp", ev.Record.Timestamp,
	)
	return nil
}
