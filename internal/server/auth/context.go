package auth

import "context"

type ctxKey struct{}

// WithClaims returns a copy of ctx carrying verified session claims.
func WithClaims(ctx context.Context, c *SessionClaims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*SessionClaims)
	return c, ok && c != nil
}
