package access

import "context"

var userCtxKey = &contextKey{"user"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithUser sets the User in the given context
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFrom finds the user from the context.
func UserFrom(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithClaims sets the authenticated principal in the given context
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFrom extracts the authenticated principal from the context
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*Claims)
	return raw, ok
}

// HasRole reports whether the context carries a principal with the role.
func HasRole(ctx context.Context, role Role) bool {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return false
	}
	return claims.Role() == role
}
