package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesPragmas(t *testing.T) {
	// WAL only applies to on-disk databases.
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.InitializeAdmin(context.Background(), "GADMIN"); err != nil {
		t.Fatalf("initialize admin: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening applies schema and migrations again without harm.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	admin, ok, err := s2.GetAdmin(context.Background())
	if err != nil {
		t.Fatalf("get admin after reopen: %v", err)
	}
	if !ok || admin != "GADMIN" {
		t.Errorf("admin after reopen = (%q, %t), want (GADMIN, true)", admin, ok)
	}
}

func TestMigrationsSetUserVersion(t *testing.T) {
	s := openTestStore(t)

	var version int
	if err := s.DB().QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}

	// The v1 index must exist.
	var name string
	err := s.DB().QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND name = 'idx_payments_recorded_at'
	`).Scan(&name)
	if err != nil {
		t.Errorf("v1 index missing: %v", err)
	}
}

func TestCloseNilSafe(t *testing.T) {
	var s Store
	if err := s.Close(); err != nil {
		t.Errorf("closing zero store: %v", err)
	}
}
