package auth

import "context"

type contextKey string

const identityKey contextKey = "identity"

// Identity is a verified caller identity. It is produced once per request,
// never persisted, and immutable for the request's lifetime. Email is
// best-effort and may be empty; Roles come from verified token claims only.
type Identity struct {
	UID   string
	Email string
	Roles []string
}

// HasRole reports whether the identity carries any of the given roles.
func (i *Identity) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext returns the verified identity attached to the context,
// or nil when the request was not authenticated upstream.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}
