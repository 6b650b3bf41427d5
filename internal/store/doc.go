// Package store provides the SQLite-backed storage access layer for the
// payment ledger.
//
// Three logical key families are persisted:
//   - the singleton admin identity (ledger_meta key "admin")
//   - the singleton monotonic payment counter (ledger_meta key "payment_count")
//   - one payments row per invoice identifier
//
// # Invariants
//
//   - Payments are append-only: INSERT ... ON CONFLICT(invoice_id) DO NOTHING
//     means a duplicate write reports inserted=false and changes nothing.
//   - WritePayment inserts the record and bumps the counter in one
//     transaction, so the counter never drifts from the row count.
//   - Every accessor refreshes the entry's touched_at stamp. External
//     archival sweeps key off that stamp, so entries that are still being
//     read are never collected.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// The connection pool is limited to a single connection; the ledger is a
// single-writer design and SQLite permits one writer at a time anyway.
package store
