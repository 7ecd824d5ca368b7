package tenant

import (
	"context"
)

// TenantContext identifies the company a request is scoped to. An empty
// CompanyID means the request sees every company.
type TenantContext struct {
	CompanyID   string
	CompanyName string
	RequestID   string
}

type contextKey struct{}

// WithContext returns ctx carrying tc
func WithContext(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext gets the tenant context from ctx
func FromContext(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(contextKey{}).(*TenantContext)
	return tc, ok && tc != nil
}

// CompanyID returns the company ctx is scoped to, or "" when unscoped
func CompanyID(ctx context.Context) string {
	if tc, ok := FromContext(ctx); ok {
		return tc.CompanyID
	}
	return ""
}

// CompanyName returns the display name of the scoped company, if sent
func CompanyName(ctx context.Context) string {
	if tc, ok := FromContext(ctx); ok {
		return tc.CompanyName
	}
	return ""
}
