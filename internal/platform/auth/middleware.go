package auth

import (
	"github.com/labstack/echo/v4"
)

// Session verifies a bearer token when one is presented and attaches the
// resulting identity to the request context, giving downstream handlers the
// trusted fast path. Requests without a usable credential pass through
// unauthenticated; handlers that need an identity resolve (and reject) via
// Resolver.
func Session(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return next(c)
			}

			ident, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				// Leave the request unauthenticated; the resolver's own
				// bearer strategy will fail the same way and the handler
				// reports a single unauthenticated classification.
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), ident)))
			return next(c)
		}
	}
}

// DevSession is a permissive middleware for development that attaches a
// default staff identity when no credential is supplied.
func DevSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if BearerToken(c) == "" {
				ident := &Identity{
					UID:   "dev-user",
					Email: "dev@localhost",
					Roles: []string{"staff"},
				}
				c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), ident)))
			}
			return next(c)
		}
	}
}
