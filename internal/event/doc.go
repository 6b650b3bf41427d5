// Package event defines the ledger's notification surface.
//
// Every successful payment recording produces exactly one Event tagged with
// the fixed ("payment", "recorded") topic pair and carrying the full
// PaymentRecord. Emission is best-effort from the ledger's perspective: the
// record is already durable when the emitter runs, and a subscriber that
// needs certainty re-reads the store.
//
// Emitter implementations: LogEmitter writes structured log lines, Bus fans
// out to in-process subscribers, Multi composes several sinks.
package event
