package event

import (
	"context"

	"github.com/invoisio/paymentledger/internal/record"
)

// Fixed topic tags for the payment-recorded notification.
const (
	TopicPayment  = "payment"
	TopicRecorded = "recorded"
)

// Event is one structured notification. The two-part topic is fixed for
// payment recordings; the payload is the complete stored record.
type Event struct {
	// ID is a unique, time-sortable event identifier (UUIDv7) so
	// subscribers can deduplicate redelivered notifications.
	ID string `json:"id"`

	// Topics is the fixed tag pair, ("payment", "recorded").
	Topics [2]string `json:"topics"`

	// Record is the full payment record as persisted.
	Record record.PaymentRecord `json:"record"`
}

// PaymentRecorded builds the notification for a freshly written record.
func PaymentRecorded(id string, rec record.PaymentRecord) Event {
	return Event{
		ID:     id,
		Topics: [2]string{TopicPayment, TopicRecorded},
		Record: rec,
	}
}

// Emitter publishes notifications to external observers.
//
// Emit is called exactly once per successful recording, after the record is
// durable, and never for failed or duplicate attempts. Implementations must
// not block the recording path indefinitely.
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}
