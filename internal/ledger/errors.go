package ledger

import (
	"errors"
	"fmt"
)

// Code enumerates the ledger's failure taxonomy. Every precondition
// violation maps to exactly one code, and each operation documents the
// codes it may signal. Codes never overlap: PaymentNotFound from GetPayment
// is a distinct outcome from a false HasPayment result.
type Code string

const (
	// CodeNotInitialized means no admin has been registered yet.
	CodeNotInitialized Code = "NOT_INITIALIZED"

	// CodeAlreadyInitialized means Initialize was called a second time.
	CodeAlreadyInitialized Code = "ALREADY_INITIALIZED"

	// CodeUnauthorized means the caller did not authenticate as the
	// identity the operation requires.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodePaymentAlreadyRecorded means the invoice id already has a record.
	// Callers should treat this as confirmation of prior success, not as a
	// failure to retry.
	CodePaymentAlreadyRecorded Code = "PAYMENT_ALREADY_RECORDED"

	// CodePaymentNotFound means GetPayment found no record for the invoice.
	CodePaymentNotFound Code = "PAYMENT_NOT_FOUND"

	// CodeInvalidInvoiceID means the invoice identifier is empty.
	CodeInvalidInvoiceID Code = "INVALID_INVOICE_ID"

	// CodeInvalidAsset means the (code, issuer) pair is malformed: empty
	// code, native code with an issuer, or token code without one.
	CodeInvalidAsset Code = "INVALID_ASSET"

	// CodeInvalidAmount means the amount is zero or negative.
	CodeInvalidAmount Code = "INVALID_AMOUNT"
)

// Error is a typed ledger failure. The Code identifies the taxonomy member;
// InvoiceID is set for per-invoice failures to aid reconciliation logs.
type Error struct {
	Code      Code
	Message   string
	InvoiceID string
}

func (e *Error) Error() string {
	if e.InvoiceID != "" {
		return fmt.Sprintf("%s: %s (invoice=%s)", e.Code, e.Message, e.InvoiceID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newError builds a ledger Error without invoice context.
func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// newInvoiceError builds a ledger Error carrying the invoice id.
func newInvoiceError(code Code, invoiceID, message string) *Error {
	return &Error{Code: code, Message: message, InvoiceID: invoiceID}
}

// CodeOf extracts the taxonomy code from err, unwrapping as needed.
// Returns "" if err is not a ledger Error.
func CodeOf(err error) Code {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsNotInitialized reports whether err carries CodeNotInitialized.
func IsNotInitialized(err error) bool {
	return CodeOf(err) == CodeNotInitialized
}

// IsAlreadyInitialized reports whether err carries CodeAlreadyInitialized.
func IsAlreadyInitialized(err error) bool {
	return CodeOf(err) == CodeAlreadyInitialized
}

// IsUnauthorized reports whether err carries CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return CodeOf(err) == CodeUnauthorized
}

// IsPaymentAlreadyRecorded reports whether err carries CodePaymentAlreadyRecorded.
func IsPaymentAlreadyRecorded(err error) bool {
	return CodeOf(err) == CodePaymentAlreadyRecorded
}

// IsPaymentNotFound reports whether err carries CodePaymentNotFound.
func IsPaymentNotFound(err error) bool {
	return CodeOf(err) == CodePaymentNotFound
}
