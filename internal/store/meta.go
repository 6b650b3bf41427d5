package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/invoisio/paymentledger/internal/record"
)

// Semantic keys for the ledger_meta singletons.
const (
	metaKeyAdmin        = "admin"
	metaKeyPaymentCount = "payment_count"
)

// HasAdmin reports whether an admin identity has been registered.
func (s *Store) HasAdmin(ctx context.Context) (bool, error) {
	return s.hasMeta(ctx, metaKeyAdmin)
}

// GetAdmin returns the registered admin identity.
// ok is false if the ledger has not been initialized.
// A successful read refreshes the entry's lease stamp.
func (s *Store) GetAdmin(ctx context.Context) (admin record.Identity, ok bool, err error) {
	value, ok, err := s.getMeta(ctx, metaKeyAdmin)
	if err != nil || !ok {
		return "", ok, err
	}
	return record.Identity(value), true, nil
}

// InitializeAdmin atomically claims the admin slot and seeds the payment
// counter to zero. Returns inserted=false (and changes nothing) if an admin
// already exists - the caller maps that to its already-initialized failure.
func (s *Store) InitializeAdmin(ctx context.Context, admin record.Identity) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("initialize admin: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := s.now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_meta (key, value, touched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`, metaKeyAdmin, string(admin), now)
	if err != nil {
		return false, fmt.Errorf("initialize admin: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("initialize admin: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Admin slot already claimed; leave the counter untouched.
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("initialize admin: commit (existing): %w", err)
		}
		return false, nil
	}

	// Seed the counter explicitly so PaymentCount is always readable.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO ledger_meta (key, value, touched_at)
		VALUES (?, '0', ?)
		ON CONFLICT(key) DO NOTHING
	`, metaKeyPaymentCount, now)
	if err != nil {
		return false, fmt.Errorf("initialize admin: seed counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("initialize admin: commit: %w", err)
	}
	return true, nil
}

// SetAdmin overwrites the admin identity. The slot must already exist;
// first-time registration goes through InitializeAdmin.
func (s *Store) SetAdmin(ctx context.Context, admin record.Identity) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE ledger_meta SET value = ?, touched_at = ? WHERE key = ?
	`, string(admin), s.now(), metaKeyAdmin)
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set admin: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("set admin: admin slot not initialized")
	}
	return nil
}

// PaymentCount returns the number of successfully recorded payments.
// Returns 0 if the counter has never been seeded.
func (s *Store) PaymentCount(ctx context.Context) (uint64, error) {
	value, ok, err := s.getMeta(ctx, metaKeyPaymentCount)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	count, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("payment count: corrupt value %q: %w", value, err)
	}
	return count, nil
}

// getMeta reads a singleton entry and refreshes its lease stamp.
func (s *Store) getMeta(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT value FROM ledger_meta WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get meta %q: %w", key, err)
	}

	if err := s.touchMeta(ctx, key); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// hasMeta reports existence and refreshes the lease stamp on a hit.
func (s *Store) hasMeta(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ledger_meta WHERE key = ?
	`, key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("has meta %q: %w", key, err)
	}
	if count == 0 {
		return false, nil
	}
	if err := s.touchMeta(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

// touchMeta refreshes the lease stamp for a singleton entry.
func (s *Store) touchMeta(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE ledger_meta SET touched_at = ? WHERE key = ?
	`, s.now(), key); err != nil {
		return fmt.Errorf("touch meta %q: %w", key, err)
	}
	return nil
}
