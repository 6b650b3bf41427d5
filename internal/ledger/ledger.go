package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/invoisio/paymentledger/internal/event"
	"github.com/invoisio/paymentledger/internal/record"
	"github.com/invoisio/paymentledger/internal/store"
)

// Ledger exposes the public contract operations over the storage access
// layer. Construct with New; the zero value is not usable.
type Ledger struct {
	store    *store.Store
	auth     Authorizer
	emitter  event.Emitter
	clock    Clock
	eventIDs event.IDGenerator
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the recording clock (default: SystemClock).
func WithClock(c Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// WithEventIDs overrides the event id generator (default: UUIDv7).
func WithEventIDs(g event.IDGenerator) Option {
	return func(l *Ledger) {
		l.eventIDs = g
	}
}

// New creates a Ledger over the given store, authorizer, and emitter.
// A nil emitter defaults to a structured-log emitter.
func New(st *store.Store, auth Authorizer, emitter event.Emitter, opts ...Option) *Ledger {
	if emitter == nil {
		emitter = event.NewLogEmitter(nil)
	}
	l := &Ledger{
		store:    st,
		auth:     auth,
		emitter:  emitter,
		clock:    SystemClock{},
		eventIDs: event.UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize registers the admin identity and seeds the payment counter.
//
// Must be called once before any admin-gated operation. Fails with
// ALREADY_INITIALIZED on a second call. No event is emitted.
func (l *Ledger) Initialize(ctx context.Context, admin record.Identity) error {
	if admin.IsZero() {
		return newError(CodeUnauthorized, "admin identity must be non-empty")
	}

	inserted, err := l.store.InitializeAdmin(ctx, admin)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if !inserted {
		return newError(CodeAlreadyInitialized, "admin already registered")
	}

	slog.Info("ledger initialized", "admin", admin)
	return nil
}

// RecordPayment records a payment for invoiceID and emits the
// ("payment", "recorded") notification.
//
// The caller must authenticate as the stored admin. Each invoice id may be
// recorded exactly once; a duplicate fails with PAYMENT_ALREADY_RECORDED
// and leaves the stored record and counter untouched.
//
// Errors: NOT_INITIALIZED, UNAUTHORIZED, INVALID_INVOICE_ID, INVALID_ASSET,
// INVALID_AMOUNT, PAYMENT_ALREADY_RECORDED.
func (l *Ledger) RecordPayment(
	ctx context.Context,
	invoiceID string,
	payer record.Identity,
	assetCode, assetIssuer string,
	amount record.Amount,
) error {
	// Authorization first: an unauthorized caller learns nothing about
	// stored state, not even whether its arguments were malformed.
	admin, err := l.requireAdmin(ctx)
	if err != nil {
		return err
	}

	// Input guards - reject malformed arguments before they reach storage.
	invoiceID = record.NormalizeInvoiceID(invoiceID)
	if err := record.ValidateInvoiceID(invoiceID); err != nil {
		return newError(CodeInvalidInvoiceID, err.Error())
	}
	asset, err := record.ParseAsset(assetCode, assetIssuer)
	if err != nil {
		return newInvoiceError(CodeInvalidAsset, invoiceID, err.Error())
	}

	if amount.Sign() <= 0 {
		return newInvoiceError(CodeInvalidAmount, invoiceID,
			"amount must be positive, got "+amount.String())
	}

	rec := record.PaymentRecord{
		InvoiceID: invoiceID,
		Payer:     payer,
		Asset:     asset,
		Amount:    amount,
		Timestamp: l.clock.Now(),
	}

	inserted, err := l.store.WritePayment(ctx, rec)
	if err != nil {
		return fmt.Errorf("record payment %s: %w", invoiceID, err)
	}
	if !inserted {
		return newInvoiceError(CodePaymentAlreadyRecorded, invoiceID,
			"payment already recorded for invoice")
	}

	slog.Info("payment recorded",
		"invoice_id", rec.InvoiceID,
		"payer", rec.Payer,
		"asset", rec.Asset.String(),
		"amount", rec.Amount.String(),
		"admin", admin,
	)

	// The record is durable at this point. Emission is best-effort: a
	// failing sink is logged, never surfaced as a recording failure.
	ev := event.PaymentRecorded(l.eventIDs.Generate(), rec)
	if err := l.emitter.Emit(ctx, ev); err != nil {
		slog.Error("event emission failed",
			"event_id", ev.ID,
			"invoice_id", rec.InvoiceID,
			"error", err,
		)
	}

	return nil
}

// GetPayment returns the stored record for invoiceID.
//
// Fails with PAYMENT_NOT_FOUND if nothing has been recorded - a hard
// failure, not an empty result. Use HasPayment for a non-failing check.
func (l *Ledger) GetPayment(ctx context.Context, invoiceID string) (record.PaymentRecord, error) {
	invoiceID = record.NormalizeInvoiceID(invoiceID)

	rec, ok, err := l.store.GetPayment(ctx, invoiceID)
	if err != nil {
		return record.PaymentRecord{}, fmt.Errorf("get payment %s: %w", invoiceID, err)
	}
	if !ok {
		return record.PaymentRecord{}, newInvoiceError(CodePaymentNotFound, invoiceID,
			"no payment recorded for invoice")
	}
	return rec, nil
}

// HasPayment reports whether a record exists for invoiceID. Never fails on
// absence.
func (l *Ledger) HasPayment(ctx context.Context, invoiceID string) (bool, error) {
	invoiceID = record.NormalizeInvoiceID(invoiceID)

	ok, err := l.store.HasPayment(ctx, invoiceID)
	if err != nil {
		return false, fmt.Errorf("has payment %s: %w", invoiceID, err)
	}
	return ok, nil
}

// PaymentCount returns the total number of payments recorded.
func (l *Ledger) PaymentCount(ctx context.Context) (uint64, error) {
	count, err := l.store.PaymentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("payment count: %w", err)
	}
	return count, nil
}

// Admin returns the current admin identity.
// Fails with NOT_INITIALIZED if Initialize has never run.
func (l *Ledger) Admin(ctx context.Context) (record.Identity, error) {
	admin, ok, err := l.store.GetAdmin(ctx)
	if err != nil {
		return "", fmt.Errorf("admin: %w", err)
	}
	if !ok {
		return "", newError(CodeNotInitialized, "ledger has not been initialized")
	}
	return admin, nil
}

// SetAdmin transfers admin rights to newAdmin.
//
// Both the current admin (authorizing the transfer out) and the new admin
// (consenting to receive the role) must authenticate. This prevents
// transferring to an identity that can never produce a valid credential.
// Previously recorded payments are not re-validated. No event is emitted.
//
// Errors: NOT_INITIALIZED, UNAUTHORIZED.
func (l *Ledger) SetAdmin(ctx context.Context, newAdmin record.Identity) error {
	if newAdmin.IsZero() {
		return newError(CodeUnauthorized, "new admin identity must be non-empty")
	}

	current, err := l.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if err := l.requireAuth(ctx, newAdmin); err != nil {
		return err
	}

	if err := l.store.SetAdmin(ctx, newAdmin); err != nil {
		return fmt.Errorf("set admin: %w", err)
	}

	slog.Info("admin transferred", "from", current, "to", newAdmin)
	return nil
}

// requireAdmin loads the admin identity and verifies the caller
// authenticated as it. Absence of an admin reports NOT_INITIALIZED, never
// UNAUTHORIZED: authorization starts by reading the admin slot.
func (l *Ledger) requireAdmin(ctx context.Context) (record.Identity, error) {
	admin, ok, err := l.store.GetAdmin(ctx)
	if err != nil {
		return "", fmt.Errorf("load admin: %w", err)
	}
	if !ok {
		return "", newError(CodeNotInitialized, "ledger has not been initialized")
	}
	if err := l.requireAuth(ctx, admin); err != nil {
		return "", err
	}
	return admin, nil
}

// requireAuth delegates to the injected authorizer and normalizes any
// non-taxonomy failure to UNAUTHORIZED.
func (l *Ledger) requireAuth(ctx context.Context, id record.Identity) error {
	err := l.auth.RequireAuth(ctx, id)
	if err == nil {
		return nil
	}
	if CodeOf(err) == CodeUnauthorized {
		return err
	}
	return newError(CodeUnauthorized, err.Error())
}
