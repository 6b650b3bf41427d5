package ledger

import (
	"context"

	"github.com/invoisio/paymentledger/internal/record"
)

// Authorizer is the host-supplied authentication capability. RequireAuth
// succeeds only if the call context proves the given identity authorized the
// call. The ledger never inspects credentials itself; it names the identity
// it requires and lets the host decide.
type Authorizer interface {
	RequireAuth(ctx context.Context, id record.Identity) error
}

type callerKey struct{}

// WithCallers returns a context carrying the identities that authenticated
// this call. The CLI attaches the invoking operator; an embedding service
// attaches whatever identities its transport verified.
func WithCallers(ctx context.Context, ids ...record.Identity) context.Context {
	return context.WithValue(ctx, callerKey{}, append([]record.Identity(nil), ids...))
}

// CallersFromContext returns the authenticated identities, or nil.
func CallersFromContext(ctx context.Context) []record.Identity {
	ids, _ := ctx.Value(callerKey{}).([]record.Identity)
	return ids
}

// ContextAuthorizer authorizes an identity iff it appears in the context's
// authenticated caller set (see WithCallers).
type ContextAuthorizer struct{}

// RequireAuth implements Authorizer.
func (ContextAuthorizer) RequireAuth(ctx context.Context, id record.Identity) error {
	for _, caller := range CallersFromContext(ctx) {
		if caller == id {
			return nil
		}
	}
	return newError(CodeUnauthorized, "caller is not authenticated as "+id.String())
}
