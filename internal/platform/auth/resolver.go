package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrUnauthenticated is returned when no verified identity can be
// established. A missing credential and an invalid one are deliberately
// indistinguishable to the caller.
var ErrUnauthenticated = errors.New("no verified identity")

// strategy attempts one way of establishing a verified identity. It returns
// (nil, nil) when it has nothing to say and the next strategy should run; an
// error aborts resolution.
type strategy func(c echo.Context) (*Identity, error)

// Resolver establishes a verified caller identity from a request. Strategies
// are evaluated in order and short-circuit on the first identity produced:
// first the identity attached to the request context by upstream session
// middleware, then a bearer token presented in the Authorization header.
type Resolver struct {
	verifier TokenVerifier
	logger   zerolog.Logger
}

func NewResolver(verifier TokenVerifier, logger zerolog.Logger) *Resolver {
	return &Resolver{verifier: verifier, logger: logger}
}

// Resolve produces the verified identity for the request or
// ErrUnauthenticated. Identity fields supplied in the request payload are
// never consulted.
func (r *Resolver) Resolve(c echo.Context) (*Identity, error) {
	strategies := []strategy{
		r.fromRequestContext,
		r.fromBearerToken,
	}

	for _, s := range strategies {
		ident, err := s(c)
		if err != nil {
			r.logger.Debug().Err(err).Str("path", c.Path()).Msg("identity strategy failed")
			continue
		}
		if ident != nil && ident.UID != "" {
			return ident, nil
		}
	}

	return nil, ErrUnauthenticated
}

// fromRequestContext is the trusted fast path: session middleware has already
// verified a credential and attached the identity to the request context.
func (r *Resolver) fromRequestContext(c echo.Context) (*Identity, error) {
	return IdentityFromContext(c.Request().Context()), nil
}

// fromBearerToken extracts and verifies a bearer token from the
// Authorization header.
func (r *Resolver) fromBearerToken(c echo.Context) (*Identity, error) {
	token := BearerToken(c)
	if token == "" {
		return nil, nil
	}
	return r.verifier.Verify(c.Request().Context(), token)
}

// BearerToken returns the trimmed token from an "Authorization: Bearer ..."
// header, or "" when the header is absent or not bearer-shaped. Header name
// matching is case-insensitive per net/http canonicalization.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
