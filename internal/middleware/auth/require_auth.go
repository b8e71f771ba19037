package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davidmr019/cafeteria_backend/internal/authz"
	"github.com/davidmr019/cafeteria_backend/internal/token"
)

const principalKey = "principal"

// RequireAuth parses the Authorization bearer header and stores the
// principal in the echo context. Requests without a valid token get 401.
func RequireAuth(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := token.ParseAccessToken(raw, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalKey, &authz.Principal{ID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal set by RequireAuth, or nil on
// unauthenticated routes.
func PrincipalFrom(c echo.Context) *authz.Principal {
	if v := c.Get(principalKey); v != nil {
		if p, ok := v.(*authz.Principal); ok {
			return p
		}
	}
	return nil
}

// SetPrincipal is used by tests to inject a principal without a token.
func SetPrincipal(c echo.Context, p *authz.Principal) {
	c.Set(principalKey, p)
}
