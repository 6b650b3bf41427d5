// Package record defines the domain types persisted and emitted by the
// payment ledger: identities, assets, 128-bit amounts, and the
// PaymentRecord itself.
//
// Types here are plain values with no storage or transport concerns.
// Validation helpers (ParseAsset, ValidateInvoiceID) return descriptive
// errors; the ledger package maps them onto its error taxonomy.
//
// Invoice identifiers are NFC normalized at the boundary (NormalizeInvoiceID)
// so that visually identical Unicode strings resolve to the same storage key.
package record
