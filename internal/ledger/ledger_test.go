package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoisio/paymentledger/internal/event"
	"github.com/invoisio/paymentledger/internal/record"
	"github.com/invoisio/paymentledger/internal/store"
	"github.com/invoisio/paymentledger/internal/testutil"
)

const (
	adminID = record.Identity("GADMIN")
	payerID = record.Identity("GPAYER")
)

type fixture struct {
	ledger  *Ledger
	store   *store.Store
	emitter *testutil.CaptureEmitter
	clock   *testutil.FixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	emitter := testutil.NewCaptureEmitter()
	clock := testutil.NewFixedClock(1700000000)

	l := New(st, ContextAuthorizer{}, emitter,
		WithClock(clock),
		WithEventIDs(event.NewFixedGenerator("evt-1", "evt-2", "evt-3")),
	)
	return &fixture{ledger: l, store: st, emitter: emitter, clock: clock}
}

// initialized returns a fixture with the admin registered and a context
// authenticated as the admin.
func initialized(t *testing.T) (*fixture, context.Context) {
	t.Helper()
	f := newFixture(t)
	ctx := WithCallers(context.Background(), adminID)
	require.NoError(t, f.ledger.Initialize(ctx, adminID))
	return f, ctx
}

func TestInitialize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ledger.Initialize(ctx, adminID))

	admin, err := f.ledger.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminID, admin)

	count, err := f.ledger.PaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	// No event for initialization.
	assert.Empty(t, f.emitter.Events())
}

func TestInitializeTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ledger.Initialize(ctx, adminID))

	err := f.ledger.Initialize(ctx, "GOTHER")
	require.Error(t, err)
	assert.True(t, IsAlreadyInitialized(err))

	// The original admin survives.
	admin, err := f.ledger.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminID, admin)
}

func TestInitializeEmptyAdmin(t *testing.T) {
	f := newFixture(t)

	err := f.ledger.Initialize(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestRecordPayment(t *testing.T) {
	f, ctx := initialized(t)
	f.clock.Set(1700000042)

	err := f.ledger.RecordPayment(ctx, "INV-001", payerID, "XLM", "", record.AmountFromInt64(100000000))
	require.NoError(t, err)

	rec, err := f.ledger.GetPayment(ctx, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, "INV-001", rec.InvoiceID)
	assert.Equal(t, payerID, rec.Payer)
	assert.True(t, rec.Asset.IsNative())
	assert.Equal(t, "100000000", rec.Amount.String())
	assert.Equal(t, int64(1700000042), rec.Timestamp)

	ok, err := f.ledger.HasPayment(ctx, "INV-001")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := f.ledger.PaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestRecordPaymentEmitsEvent(t *testing.T) {
	f, ctx := initialized(t)
	f.clock.Set(1700000042)

	err := f.ledger.RecordPayment(ctx, "INV-001", payerID, "USDC", "GISSUER", record.AmountFromInt64(2500000))
	require.NoError(t, err)

	events := f.emitter.Events()
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "evt-1", ev.ID)
	assert.Equal(t, [2]string{"payment", "recorded"}, ev.Topics)
	assert.Equal(t, "INV-001", ev.Record.InvoiceID)
	assert.Equal(t, payerID, ev.Record.Payer)
	assert.Equal(t, record.TokenAsset("USDC", "GISSUER"), ev.Record.Asset)
	assert.Equal(t, "2500000", ev.Record.Amount.String())
	assert.Equal(t, int64(1700000042), ev.Record.Timestamp)
}

func TestRecordPaymentDuplicate(t *testing.T) {
	f, ctx := initialized(t)

	require.NoError(t, f.ledger.RecordPayment(ctx, "INV-001", payerID, "XLM", "", record.AmountFromInt64(100)))

	// Different payload, same invoice: rejected, nothing changes.
	err := f.ledger.RecordPayment(ctx, "INV-001", "GOTHER", "XLM", "", record.AmountFromInt64(999))
	require.Error(t, err)
	assert.True(t, IsPaymentAlreadyRecorded(err))

	rec, err := f.ledger.GetPayment(ctx, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, payerID, rec.Payer)
	assert.Equal(t, "100", rec.Amount.String())

	count, err := f.ledger.PaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// Only the accepted recording emitted.
	assert.Len(t, f.emitter.Events(), 1)
}

func TestRecordPaymentUnauthorized(t *testing.T) {
	f, _ := initialized(t)
	ctx := WithCallers(context.Background(), "GINTRUDER")

	err := f.ledger.RecordPayment(ctx, "INV-001", payerID, "XLM", "", record.AmountFromInt64(100))
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	// Complete no-op: no record, no count, no event.
	ok, err := f.ledger.HasPayment(ctx, "INV-001")
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := f.ledger.PaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.Empty(t, f.emitter.Events())
}

func TestRecordPaymentBeforeInitialize(t *testing.T) {
	f := newFixture(t)
	ctx := WithCallers(context.Background(), adminID)

	err := f.ledger.RecordPayment(ctx, "INV-001", payerID, "XLM", "", record.AmountFromInt64(100))
	require.Error(t, err)
	assert.True(t, IsNotInitialized(err))
}

func TestRecordPaymentInputGuards(t *testing.T) {
	f, ctx := initialized(t)

	tests := []struct {
		name      string
		invoiceID string
		code      string
		issuer    string
		amount    record.Amount
		wantCode  Code
	}{
		{
			name:     "empty invoice id",
			code:     "XLM",
			amount:   record.AmountFromInt64(100),
			wantCode: CodeInvalidInvoiceID,
		},
		{
			name:      "empty asset code",
			invoiceID: "INV-001",
			amount:    record.AmountFromInt64(100),
			wantCode:  CodeInvalidAsset,
		},
		{
			name:      "native with issuer",
			invoiceID: "INV-001",
			code:      "XLM",
			issuer:    "GISSUER",
			amount:    record.AmountFromInt64(100),
			wantCode:  CodeInvalidAsset,
		},
		{
			name:      "token without issuer",
			invoiceID: "INV-001",
			code:      "USDC",
			amount:    record.AmountFromInt64(100),
			wantCode:  CodeInvalidAsset,
		},
		{
			name:      "zero amount",
			invoiceID: "INV-001",
			code:      "XLM",
			amount:    record.AmountFromInt64(0),
			wantCode:  CodeInvalidAmount,
		},
		{
			name:      "negative amount",
			invoiceID: "INV-001",
			code:      "XLM",
			amount:    record.AmountFromInt64(-5),
			wantCode:  CodeInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ledger.RecordPayment(ctx, tt.invoiceID, payerID, tt.code, tt.issuer, tt.amount)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, CodeOf(err))
		})
	}

	// None of the rejected attempts stored anything or emitted.
	count, err := f.ledger.PaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.Empty(t, f.emitter.Events())
}

func TestRecordPaymentNormalizesInvoiceID(t *testing.T) {
	f, ctx := initialized(t)

	decomposed := "INV-cafe\u0301"
	composed := "INV-caf\u00e9"

	require.NoError(t, f.ledger.RecordPayment(ctx, decomposed, payerID, "XLM", "", record.AmountFromInt64(100)))

	// Both forms resolve to the same record.
	ok, err := f.ledger.HasPayment(ctx, composed)
	require.NoError(t, err)
	assert.True(t, ok)

	err = f.ledger.RecordPayment(ctx, composed, payerID, "XLM", "", record.AmountFromInt64(100))
	require.Error(t, err)
	assert.True(t, IsPaymentAlreadyRecorded(err))
}

func TestRecordPaymentEmitterFailureDoesNotFail(t *testing.T) {
	f, ctx := initialized(t)
	f.emitter.FailWith(errors.New("sink down"))

	// The recording is durable before emission; a failing sink is logged
	// and swallowed.
	err := f.ledger.RecordPayment(ctx, "INV-001", payerID, "XLM", "", record.AmountFromInt64(100))
	require.NoError(t, err)

	ok, err := f.ledger.HasPayment(ctx, "INV-001")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetPaymentNotFound(t *testing.T) {
	f, ctx := initialized(t)

	_, err := f.ledger.GetPayment(ctx, "INV-MISSING")
	require.Error(t, err)
	assert.True(t, IsPaymentNotFound(err))
}

func TestAdminBeforeInitialize(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Admin(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotInitialized(err))
}

func TestSetAdmin(t *testing.T) {
	f, _ := initialized(t)
	newAdmin := record.Identity("GNEWADMIN")

	// Both identities authenticate the transfer.
	ctx := WithCallers(context.Background(), adminID, newAdmin)
	require.NoError(t, f.ledger.SetAdmin(ctx, newAdmin))

	admin, err := f.ledger.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, newAdmin, admin)

	// The old admin is locked out; the new one records fine.
	oldCtx := WithCallers(context.Background(), adminID)
	err = f.ledger.RecordPayment(oldCtx, "INV-OLD", payerID, "XLM", "", record.AmountFromInt64(1))
	assert.True(t, IsUnauthorized(err))

	newCtx := WithCallers(context.Background(), newAdmin)
	require.NoError(t, f.ledger.RecordPayment(newCtx, "INV-NEW", payerID, "XLM", "", record.AmountFromInt64(1)))
}

func TestSetAdminRequiresNewAdminConsent(t *testing.T) {
	f, ctx := initialized(t)

	// Only the current admin authenticated; the new admin did not.
	err := f.ledger.SetAdmin(ctx, "GNEWADMIN")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	admin, err := f.ledger.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminID, admin)
}

func TestSetAdminRequiresCurrentAdmin(t *testing.T) {
	f, _ := initialized(t)
	newAdmin := record.Identity("GNEWADMIN")

	// The new admin alone cannot seize the role.
	ctx := WithCallers(context.Background(), newAdmin)
	err := f.ledger.SetAdmin(ctx, newAdmin)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestSetAdminBeforeInitialize(t *testing.T) {
	f := newFixture(t)
	ctx := WithCallers(context.Background(), adminID)

	err := f.ledger.SetAdmin(ctx, "GNEWADMIN")
	require.Error(t, err)
	assert.True(t, IsNotInitialized(err))
}

func TestSetAdminKeepsExistingRecords(t *testing.T) {
	f, ctx := initialized(t)
	require.NoError(t, f.ledger.RecordPayment(ctx, "INV-001", payerID, "XLM", "", record.AmountFromInt64(100)))

	newAdmin := record.Identity("GNEWADMIN")
	transferCtx := WithCallers(context.Background(), adminID, newAdmin)
	require.NoError(t, f.ledger.SetAdmin(transferCtx, newAdmin))

	rec, err := f.ledger.GetPayment(ctx, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, payerID, rec.Payer)

	count, err := f.ledger.PaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
