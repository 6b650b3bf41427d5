package harness

// TraceEvent records one executed step and its observed outcome.
type TraceEvent struct {
	// Step is the zero-based index of the step in the scenario.
	Step int `json:"step"`

	// Op is the operation name.
	Op string `json:"op"`

	// Time is the deterministic clock reading when the step ran.
	Time int64 `json:"time"`

	// Args echoes the step's arguments (operation dependent).
	Args map[string]any `json:"args,omitempty"`

	// Outcome is "ok" for success, otherwise the error code
	// (or "error" for a failure outside the error taxonomy).
	Outcome string `json:"outcome"`

	// Result holds operation output on success (the fetched record,
	// the count, the existence flag, the admin identity).
	Result map[string]any `json:"result,omitempty"`
}

// EmittedEvent is the deterministic snapshot of one emitted ledger event.
type EmittedEvent struct {
	ID        string `json:"id"`
	Topics    string `json:"topics"`
	InvoiceID string `json:"invoice_id"`
	Payer     string `json:"payer"`
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every step matched its expectation and every
	// assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Events are the ledger events emitted during the run, in order.
	Events []EmittedEvent `json:"events"`

	// Errors contains expectation and assertion failures. Empty if Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates an empty passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Events: []EmittedEvent{},
	}
}

// AddError records a failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
