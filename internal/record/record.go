package record

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// PaymentRecord is the durable snapshot of one recorded invoice payment.
//
// Once written a record is never updated or deleted; the invoice identifier
// is its immutable key.
type PaymentRecord struct {
	// InvoiceID is the caller-supplied unique invoice key,
	// NFC normalized (e.g. "invoisio-abc123").
	InvoiceID string `json:"invoice_id"`

	// Payer is the account that sent the off-ledger payment.
	Payer Identity `json:"payer"`

	// Asset identifies what was paid: native, or an issued token.
	Asset Asset `json:"asset"`

	// Amount is the payment amount in the asset's smallest unit.
	Amount Amount `json:"amount"`

	// Timestamp is the unix time (seconds) at which the ledger recorded
	// the payment, sourced from the injected clock at write time.
	Timestamp int64 `json:"timestamp"`
}

// NormalizeInvoiceID NFC-normalizes an invoice identifier. All storage and
// lookup paths go through this so composed and decomposed Unicode forms of
// the same identifier hit the same key.
func NormalizeInvoiceID(id string) string {
	return norm.NFC.String(id)
}

// ValidateInvoiceID rejects identifiers that cannot serve as storage keys.
func ValidateInvoiceID(id string) error {
	if NormalizeInvoiceID(id) == "" {
		return fmt.Errorf("invoice id must be non-empty")
	}
	return nil
}

// Validate checks the record's structural invariants. Amount positivity is
// an admission rule enforced by the ledger, not re-checked here: stored
// records are trusted.
func (r PaymentRecord) Validate() error {
	if err := ValidateInvoiceID(r.InvoiceID); err != nil {
		return err
	}
	if err := r.Asset.Validate(); err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	return nil
}
