package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Operation names accepted in scenario steps.
const (
	OpInit     = "init"
	OpRecord   = "record"
	OpGet      = "get"
	OpHas      = "has"
	OpCount    = "count"
	OpAdmin    = "admin"
	OpSetAdmin = "set_admin"
)

// Scenario defines a conformance scenario: a sequence of ledger operations
// with per-step expected outcomes, plus assertions on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// StartTime is the unix time the deterministic clock starts at.
	// Defaults to 1700000000 when zero.
	StartTime int64 `yaml:"start_time,omitempty"`

	// Tick is how many seconds the clock advances before each step.
	// Defaults to 10 when zero.
	Tick int64 `yaml:"tick,omitempty"`

	// Steps is the operation sequence, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final ledger state and emitted events.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one ledger operation. Which fields apply depends on Op.
type Step struct {
	// Op names the operation: init, record, get, has, count, admin, set_admin.
	Op string `yaml:"op"`

	// Callers are the identities this step authenticates as.
	// set_admin needs both the current and the new admin here.
	Callers []string `yaml:"callers,omitempty"`

	// Admin is the identity argument for init and set_admin.
	Admin string `yaml:"admin,omitempty"`

	// InvoiceID is the invoice argument for record, get, and has.
	InvoiceID string `yaml:"invoice_id,omitempty"`

	// Record arguments.
	Payer       string `yaml:"payer,omitempty"`
	AssetCode   string `yaml:"asset_code,omitempty"`
	AssetIssuer string `yaml:"asset_issuer,omitempty"`
	Amount      string `yaml:"amount,omitempty"`

	// ExpectError is the error code this step must fail with
	// (e.g. "PAYMENT_ALREADY_RECORDED"). Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates final state after all steps ran.
type Assertion struct {
	// Type selects the check:
	// - "payment_count": the counter equals Count
	// - "has_payment": existence of InvoiceID equals Exists
	// - "admin": the stored admin equals Admin
	// - "events_emitted": exactly Count events were emitted
	Type string `yaml:"type"`

	Count     uint64 `yaml:"count,omitempty"`
	InvoiceID string `yaml:"invoice_id,omitempty"`
	Exists    bool   `yaml:"exists,omitempty"`
	Admin     string `yaml:"admin,omitempty"`
}

// Assertion type constants.
const (
	AssertPaymentCount  = "payment_count"
	AssertHasPayment    = "has_payment"
	AssertAdmin         = "admin"
	AssertEventsEmitted = "events_emitted"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly instead of silently
// weakening a scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and each step
// carries the arguments its operation needs.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpInit:
		if step.Admin == "" {
			return fmt.Errorf("steps[%d]: admin is required for init", index)
		}
	case OpRecord:
		if step.InvoiceID == "" && step.ExpectError == "" {
			return fmt.Errorf("steps[%d]: invoice_id is required for record", index)
		}
		if step.Amount == "" {
			return fmt.Errorf("steps[%d]: amount is required for record", index)
		}
	case OpGet, OpHas:
		if step.InvoiceID == "" {
			return fmt.Errorf("steps[%d]: invoice_id is required for %s", index, step.Op)
		}
	case OpCount, OpAdmin:
		// No arguments.
	case OpSetAdmin:
		if step.Admin == "" {
			return fmt.Errorf("steps[%d]: admin is required for set_admin", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertPaymentCount, AssertEventsEmitted:
		// Count of zero is meaningful.
	case AssertHasPayment:
		if a.InvoiceID == "" {
			return fmt.Errorf("assertions[%d]: invoice_id is required for has_payment", index)
		}
	case AssertAdmin:
		if a.Admin == "" {
			return fmt.Errorf("assertions[%d]: admin is required for admin", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
