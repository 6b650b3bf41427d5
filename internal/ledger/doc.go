// Package ledger implements the invoice-payment recording state machine.
//
// The ledger anchors off-chain payment confirmations into an append-only,
// queryable record. Per invoice key there are two states, absent and
// recorded, with a single one-way transition driven by an authorized
// RecordPayment. The admin identity is a one-slot register: unset until
// Initialize, then replaceable via SetAdmin.
//
// ARCHITECTURE:
//
// Every public operation runs as one storage transaction: it either fully
// commits its writes (and, for RecordPayment, emits its notification after
// commit) or fails with a typed Error and no visible effect. There is no
// intra-ledger concurrency; serialization is delegated to the store's
// single-writer connection.
//
// Host capabilities (authentication and the recording clock) are injected
// via the Authorizer and Clock interfaces rather than read from ambient
// state, so tests substitute fakes for both.
//
// Failure taxonomy: see errors.go. Retrying RecordPayment for an invoice
// that already has a record fails with PAYMENT_ALREADY_RECORDED by design;
// callers treat that as confirmation of prior success.
package ledger
