package middleware

import (
	"context"

	"github.com/tablero-app/tablero/internal/application/authz"
)

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal injects the authenticated principal into the context.
func WithPrincipal(ctx context.Context, p authz.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the principal from the context.
// ok is false when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) (authz.Principal, bool) {
	v := ctx.Value(principalContextKey)
	if v == nil {
		return authz.Principal{}, false
	}
	p, ok := v.(authz.Principal)
	return p, ok
}
