package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	plain := newError(CodeNotInitialized, "ledger has not been initialized")
	assert.Equal(t, "NOT_INITIALIZED: ledger has not been initialized", plain.Error())

	withInvoice := newInvoiceError(CodePaymentAlreadyRecorded, "INV-001", "payment already recorded for invoice")
	assert.Equal(t, "PAYMENT_ALREADY_RECORDED: payment already recorded for invoice (invoice=INV-001)", withInvoice.Error())
}

func TestCodeOfUnwraps(t *testing.T) {
	base := newInvoiceError(CodePaymentNotFound, "INV-001", "no payment recorded for invoice")
	wrapped := fmt.Errorf("query ledger: %w", base)

	assert.Equal(t, CodePaymentNotFound, CodeOf(wrapped))
	assert.True(t, IsPaymentNotFound(wrapped))
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("disk full")))
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.False(t, IsUnauthorized(errors.New("disk full")))
}

func TestPredicatesAreDisjoint(t *testing.T) {
	err := newError(CodeAlreadyInitialized, "admin already registered")

	assert.True(t, IsAlreadyInitialized(err))
	assert.False(t, IsNotInitialized(err))
	assert.False(t, IsUnauthorized(err))
	assert.False(t, IsPaymentAlreadyRecorded(err))
	assert.False(t, IsPaymentNotFound(err))
}
