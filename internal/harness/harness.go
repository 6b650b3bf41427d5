package harness

import (
	"context"
	"fmt"

	"github.com/invoisio/paymentledger/internal/ledger"
	"github.com/invoisio/paymentledger/internal/record"
	"github.com/invoisio/paymentledger/internal/store"
	"github.com/invoisio/paymentledger/internal/testutil"
)

// Defaults for the deterministic clock.
const (
	defaultStartTime = 1700000000
	defaultTick      = 10
)

// seqIDGenerator produces "evt-0001", "evt-0002", ... so scenario runs emit
// the same event ids every time.
type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("evt-%04d", g.n)
}

// Harness drives one scenario against a real ledger.
type Harness struct {
	store   *store.Store
	ledger  *ledger.Ledger
	emitter *testutil.CaptureEmitter
	clock   *testutil.FixedClock
	tick    int64
}

// Run executes a scenario and returns its result.
//
// Each run uses a fresh in-memory database, a frozen clock advanced by a
// fixed tick per step, and sequential event ids, so repeated runs of the
// same scenario produce identical traces.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	defer st.Close()

	start := scenario.StartTime
	if start == 0 {
		start = defaultStartTime
	}
	tick := scenario.Tick
	if tick == 0 {
		tick = defaultTick
	}

	clock := testutil.NewFixedClock(start)
	emitter := testutil.NewCaptureEmitter()

	h := &Harness{
		store:   st,
		emitter: emitter,
		clock:   clock,
		tick:    tick,
		ledger: ledger.New(st, ledger.ContextAuthorizer{}, emitter,
			ledger.WithClock(clock),
			ledger.WithEventIDs(&seqIDGenerator{}),
		),
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
	}

	h.captureEvents(result)
	h.evaluateAssertions(scenario.Assertions, result)

	return result, nil
}

// executeStep runs one operation against the ledger and appends its trace
// event. A mismatch between the observed outcome and the step's expectation
// is a result error, not a run error.
func (h *Harness) executeStep(index int, step Step, result *Result) error {
	h.clock.Advance(h.tick)

	ctx := context.Background()
	if len(step.Callers) > 0 {
		ids := make([]record.Identity, len(step.Callers))
		for i, c := range step.Callers {
			ids[i] = record.Identity(c)
		}
		ctx = ledger.WithCallers(ctx, ids...)
	}

	ev := TraceEvent{
		Step: index,
		Op:   step.Op,
		Time: h.clock.Now(),
	}

	var opErr error
	switch step.Op {
	case OpInit:
		ev.Args = map[string]any{"admin": step.Admin}
		opErr = h.ledger.Initialize(ctx, record.Identity(step.Admin))

	case OpRecord:
		ev.Args = map[string]any{
			"invoice_id": step.InvoiceID,
			"payer":      step.Payer,
			"asset_code": step.AssetCode,
			"amount":     step.Amount,
		}
		if step.AssetIssuer != "" {
			ev.Args["asset_issuer"] = step.AssetIssuer
		}
		amount, err := record.ParseAmount(step.Amount)
		if err != nil {
			// An unparseable amount is below the ledger surface; treat it
			// as the zero amount so the ledger's own guard reports it.
			amount = record.Amount{}
		}
		opErr = h.ledger.RecordPayment(ctx, step.InvoiceID,
			record.Identity(step.Payer), step.AssetCode, step.AssetIssuer, amount)

	case OpGet:
		ev.Args = map[string]any{"invoice_id": step.InvoiceID}
		rec, err := h.ledger.GetPayment(ctx, step.InvoiceID)
		opErr = err
		if err == nil {
			ev.Result = map[string]any{
				"invoice_id": rec.InvoiceID,
				"payer":      rec.Payer.String(),
				"asset":      rec.Asset.String(),
				"amount":     rec.Amount.String(),
				"timestamp":  rec.Timestamp,
			}
		}

	case OpHas:
		ev.Args = map[string]any{"invoice_id": step.InvoiceID}
		ok, err := h.ledger.HasPayment(ctx, step.InvoiceID)
		opErr = err
		if err == nil {
			ev.Result = map[string]any{"exists": ok}
		}

	case OpCount:
		count, err := h.ledger.PaymentCount(ctx)
		opErr = err
		if err == nil {
			ev.Result = map[string]any{"count": count}
		}

	case OpAdmin:
		admin, err := h.ledger.Admin(ctx)
		opErr = err
		if err == nil {
			ev.Result = map[string]any{"admin": admin.String()}
		}

	case OpSetAdmin:
		ev.Args = map[string]any{"admin": step.Admin}
		opErr = h.ledger.SetAdmin(ctx, record.Identity(step.Admin))

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	ev.Outcome = outcomeOf(opErr)
	result.Trace = append(result.Trace, ev)

	if ev.Outcome != expectedOutcome(step) {
		result.AddError(fmt.Sprintf("steps[%d] (%s): outcome %q, want %q",
			index, step.Op, ev.Outcome, expectedOutcome(step)))
	}

	return nil
}

// outcomeOf maps an operation error onto a trace outcome string.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if code := ledger.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}

func expectedOutcome(step Step) string {
	if step.ExpectError == "" {
		return "ok"
	}
	return step.ExpectError
}

// captureEvents snapshots everything the ledger emitted during the run.
func (h *Harness) captureEvents(result *Result) {
	for _, ev := range h.emitter.Events() {
		result.Events = append(result.Events, EmittedEvent{
			ID:        ev.ID,
			Topics:    ev.Topics[0] + "." + ev.Topics[1],
			InvoiceID: ev.Record.InvoiceID,
			Payer:     ev.Record.Payer.String(),
			Asset:     ev.Record.Asset.String(),
			Amount:    ev.Record.Amount.String(),
			Timestamp: ev.Record.Timestamp,
		})
	}
}
