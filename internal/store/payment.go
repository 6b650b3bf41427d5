package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/invoisio/paymentledger/internal/record"
)

// WritePayment inserts a payment record and bumps the payment counter in a
// single transaction.
//
// Uses ON CONFLICT(invoice_id) DO NOTHING for idempotency: if a record for
// the invoice already exists, nothing is written, the counter is unchanged,
// and inserted=false is returned. The caller maps that to its
// already-recorded failure. Either both writes commit or neither does.
func (s *Store) WritePayment(ctx context.Context, rec record.PaymentRecord) (inserted bool, err error) {
	if err := rec.Validate(); err != nil {
		return false, fmt.Errorf("write payment: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write payment: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := s.now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO payments
		(invoice_id, payer, asset_kind, asset_code, asset_issuer, amount, recorded_at, touched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(invoice_id) DO NOTHING
	`,
		rec.InvoiceID,
		string(rec.Payer),
		string(rec.Asset.Kind),
		rec.Asset.Code,
		rec.Asset.Issuer,
		rec.Amount.String(),
		rec.Timestamp,
		now,
	)
	if err != nil {
		return false, fmt.Errorf("write payment: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write payment: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Invoice already recorded - commit the no-op so the read lock drops.
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("write payment: commit (existing): %w", err)
		}
		return false, nil
	}

	// Counter bump rides in the same transaction as the insert.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO ledger_meta (key, value, touched_at)
		VALUES (?, '1', ?)
		ON CONFLICT(key) DO UPDATE SET
			value = CAST(CAST(value AS INTEGER) + 1 AS TEXT),
			touched_at = excluded.touched_at
	`, metaKeyPaymentCount, now)
	if err != nil {
		return false, fmt.Errorf("write payment: bump counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write payment: commit: %w", err)
	}
	return true, nil
}

// GetPayment returns the stored record for an invoice id.
// ok is false if no payment has been recorded for it.
// A successful read refreshes the row's lease stamp.
func (s *Store) GetPayment(ctx context.Context, invoiceID string) (rec record.PaymentRecord, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT invoice_id, payer, asset_kind, asset_code, asset_issuer, amount, recorded_at
		FROM payments
		WHERE invoice_id = ?
	`, invoiceID)

	rec, err = scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.PaymentRecord{}, false, nil
	}
	if err != nil {
		return record.PaymentRecord{}, false, err
	}

	if err := s.touchPayment(ctx, invoiceID); err != nil {
		return record.PaymentRecord{}, false, err
	}
	return rec, true, nil
}

// HasPayment reports whether a record exists for the invoice id.
// A hit refreshes the row's lease stamp.
func (s *Store) HasPayment(ctx context.Context, invoiceID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM payments WHERE invoice_id = ?
	`, invoiceID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("has payment: %w", err)
	}
	if count == 0 {
		return false, nil
	}
	if err := s.touchPayment(ctx, invoiceID); err != nil {
		return false, err
	}
	return true, nil
}

// touchPayment refreshes the lease stamp for a payment row.
func (s *Store) touchPayment(ctx context.Context, invoiceID string) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE payments SET touched_at = ? WHERE invoice_id = ?
	`, s.now(), invoiceID); err != nil {
		return fmt.Errorf("touch payment %q: %w", invoiceID, err)
	}
	return nil
}

// scanPayment scans a single payments row into a PaymentRecord.
// The stored asset and amount are re-validated on the way out so a corrupt
// row surfaces as an error rather than an impossible value.
func scanPayment(row *sql.Row) (record.PaymentRecord, error) {
	var (
		rec       record.PaymentRecord
		payer     string
		kind      string
		amountStr string
	)
	if err := row.Scan(
		&rec.InvoiceID, &payer, &kind, &rec.Asset.Code, &rec.Asset.Issuer,
		&amountStr, &rec.Timestamp,
	); err != nil {
		return record.PaymentRecord{}, err
	}

	rec.Payer = record.Identity(payer)
	rec.Asset.Kind = record.AssetKind(kind)
	if err := rec.Asset.Validate(); err != nil {
		return record.PaymentRecord{}, fmt.Errorf("scan payment %q: %w", rec.InvoiceID, err)
	}

	amount, err := record.ParseAmount(amountStr)
	if err != nil {
		return record.PaymentRecord{}, fmt.Errorf("scan payment %q: %w", rec.InvoiceID, err)
	}
	rec.Amount = amount

	return rec, nil
}
