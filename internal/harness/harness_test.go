package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecordThenRead(t *testing.T) {
	scenario, err := LoadScenario("testdata/record_then_read.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 7)

	// The duplicate recording at step 5 is rejected with the duplicate code.
	assert.Equal(t, "PAYMENT_ALREADY_RECORDED", result.Trace[5].Outcome)

	// The counter reads 1 before and after the rejected duplicate.
	assert.Equal(t, map[string]any{"count": uint64(1)}, result.Trace[4].Result)
	assert.Equal(t, map[string]any{"count": uint64(1)}, result.Trace[6].Result)

	// The fetched record carries the first recording's payload.
	assert.Equal(t, "100000000", result.Trace[2].Result["amount"])
	assert.Equal(t, "GPAYER_ACME", result.Trace[2].Result["payer"])

	// Exactly one event, for the accepted recording.
	require.Len(t, result.Events, 1)
	assert.Equal(t, "evt-0001", result.Events[0].ID)
	assert.Equal(t, "payment.recorded", result.Events[0].Topics)
	assert.Equal(t, "INV-2024-001", result.Events[0].InvoiceID)
}

func TestRunAdminTransfer(t *testing.T) {
	scenario, err := LoadScenario("testdata/admin_transfer.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)

	// The one-sided transfer and the old admin's recording both fail.
	assert.Equal(t, "UNAUTHORIZED", result.Trace[2].Outcome)
	assert.Equal(t, "UNAUTHORIZED", result.Trace[4].Outcome)

	// After the co-signed transfer the admin op reports the new identity.
	assert.Equal(t, map[string]any{"admin": "GADMIN_TWO"}, result.Trace[6].Result)

	require.Len(t, result.Events, 2)
	assert.Equal(t, "USDC:GISSUER_CIRCLE", result.Events[0].Asset)
	assert.Equal(t, "XLM", result.Events[1].Asset)
}

func TestRunUninitializedGuards(t *testing.T) {
	scenario, err := LoadScenario("testdata/uninitialized_guards.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "NOT_INITIALIZED", result.Trace[0].Outcome)
	assert.Equal(t, "NOT_INITIALIZED", result.Trace[1].Outcome)
	assert.Equal(t, map[string]any{"exists": false}, result.Trace[2].Result)
	assert.Equal(t, "PAYMENT_NOT_FOUND", result.Trace[3].Outcome)
	assert.Empty(t, result.Events)
}

func TestRunReportsOutcomeMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "a step expecting success that fails",
		Steps: []Step{
			// Recording before init fails with NOT_INITIALIZED, but the
			// step declares no expected error.
			{
				Op:        OpRecord,
				Callers:   []string{"GADMIN"},
				InvoiceID: "INV-1",
				Payer:     "GPAYER",
				AssetCode: "XLM",
				Amount:    "10",
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `outcome "NOT_INITIALIZED", want "ok"`)
}

func TestRunReportsAssertionFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "assertion-failure",
		Description: "final state does not match",
		Steps: []Step{
			{Op: OpInit, Admin: "GADMIN"},
		},
		Assertions: []Assertion{
			{Type: AssertPaymentCount, Count: 3},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "payment count = 0, want 3")
}

func TestRunDeterministicClock(t *testing.T) {
	scenario := &Scenario{
		Name:        "clock",
		Description: "steps advance the clock by a fixed tick",
		StartTime:   5000,
		Tick:        7,
		Steps: []Step{
			{Op: OpInit, Admin: "GADMIN"},
			{Op: OpCount},
			{Op: OpCount},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, int64(5007), result.Trace[0].Time)
	assert.Equal(t, int64(5014), result.Trace[1].Time)
	assert.Equal(t, int64(5021), result.Trace[2].Time)
}
