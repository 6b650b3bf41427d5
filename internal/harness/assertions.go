package harness

import (
	"context"
	"fmt"

	"github.com/invoisio/paymentledger/internal/record"
)

// evaluateAssertions checks every final-state assertion against the store
// and the captured events. Failures accumulate on the result; evaluation
// never stops early so a broken scenario reports everything at once.
func (h *Harness) evaluateAssertions(assertions []Assertion, result *Result) {
	ctx := context.Background()

	for i, a := range assertions {
		switch a.Type {
		case AssertPaymentCount:
			count, err := h.store.PaymentCount(ctx)
			if err != nil {
				result.AddError(fmt.Sprintf("assertions[%d]: payment count: %v", i, err))
				continue
			}
			if count != a.Count {
				result.AddError(fmt.Sprintf("assertions[%d]: payment count = %d, want %d", i, count, a.Count))
			}

		case AssertHasPayment:
			ok, err := h.store.HasPayment(ctx, record.NormalizeInvoiceID(a.InvoiceID))
			if err != nil {
				result.AddError(fmt.Sprintf("assertions[%d]: has payment: %v", i, err))
				continue
			}
			if ok != a.Exists {
				result.AddError(fmt.Sprintf("assertions[%d]: has_payment(%s) = %t, want %t",
					i, a.InvoiceID, ok, a.Exists))
			}

		case AssertAdmin:
			admin, ok, err := h.store.GetAdmin(ctx)
			if err != nil {
				result.AddError(fmt.Sprintf("assertions[%d]: get admin: %v", i, err))
				continue
			}
			if !ok {
				result.AddError(fmt.Sprintf("assertions[%d]: no admin stored, want %q", i, a.Admin))
				continue
			}
			if admin.String() != a.Admin {
				result.AddError(fmt.Sprintf("assertions[%d]: admin = %q, want %q", i, admin, a.Admin))
			}

		case AssertEventsEmitted:
			if got := uint64(len(result.Events)); got != a.Count {
				result.AddError(fmt.Sprintf("assertions[%d]: %d events emitted, want %d", i, got, a.Count))
			}
		}
	}
}
