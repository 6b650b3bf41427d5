// Package harness runs YAML conformance scenarios against a real ledger.
//
// Each scenario opens a fresh in-memory database, drives the full stack
// (authorization, input guards, storage, event emission) through a sequence
// of operations, and checks the outcomes the scenario declares. Clock and
// event ids are deterministic, so a scenario's trace is byte-stable and can
// be pinned with a golden file.
package harness
