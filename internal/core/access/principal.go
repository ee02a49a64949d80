// Package access holds the request-scoped identity and the checks every
// protected operation runs before touching a resource. The principal travels
// in the request context, never in process-wide state.
package access

import "context"

type principalKey struct{}

// Principal is the identity extracted from a validated bearer token.
// Subject is the raw subject claim; it is parsed into a user id only when an
// operation actually needs the identity, so a malformed subject is reported
// at the point of use.
type Principal struct {
	Subject       string
	Authenticated bool
}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the principal set by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
