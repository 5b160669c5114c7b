package tenant

import "context"

// DefaultID is the single-tenant default used when no tenant is resolved.
const DefaultID = "00000000-0000-0000-0000-000000000000"

type ctxKey struct{}

// NewContext returns a context carrying the given tenant ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the tenant ID stored in ctx, or DefaultID if absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return DefaultID
}
