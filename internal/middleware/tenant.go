package middleware

import (
	"context"
	"net/http"

	"github.com/tasksetu/tasksetu/internal/domain/tenant"
)

// DefaultTenantID is the single-tenant default used when no X-Tenant-ID header is set.
const DefaultTenantID = tenant.DefaultID

const headerTenantID = "X-Tenant-ID"

// TenantID is middleware that extracts the tenant ID from the X-Tenant-ID header
// and stores it in the request context. Falls back to DefaultTenantID if absent.
func TenantID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := r.Header.Get(headerTenantID)
		if tid == "" {
			tid = DefaultTenantID
		}
		next.ServeHTTP(w, r.WithContext(tenant.NewContext(r.Context(), tid)))
	})
}

// TenantIDFromContext returns the tenant ID stored in ctx, or DefaultTenantID if absent.
func TenantIDFromContext(ctx context.Context) string {
	return tenant.FromContext(ctx)
}

// WithTenantID returns a context carrying the given tenant ID. Used by the
// CLI and by subscribers that run outside an HTTP request.
func WithTenantID(ctx context.Context, tid string) context.Context {
	return tenant.NewContext(ctx, tid)
}
