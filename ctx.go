package auth

import "context"

type contextKey struct {
	name string
}

func (c *contextKey) String() string {
	return "auth context key " + c.name
}

var (
	identityCtxKey = &contextKey{"identity"}
	claimsCtxKey   = &contextKey{"claims"}
)

// WithIdentityContext returns a context carrying the authenticated identity.
func WithIdentityContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext retrieves the identity set by the request gate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(Identity)
	return identity, ok
}

// WithClaimsContext returns a context carrying the validated claims.
func WithClaimsContext(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFromContext retrieves the claims set by the request gate.
func ClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*JWTClaims)
	return claims, ok
}
