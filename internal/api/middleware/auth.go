package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace-api/internal/api/metrics"
	"github.com/freelancehub/marketplace-api/internal/core/access"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

// Auth extracts the bearer token, validates it through the token service and
// injects the resulting principal into the request context. A request whose
// token is missing, malformed or expired is rejected here, before any
// business logic runs.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := tokens.Validate(parts[1])
			if err != nil {
				metrics.TokenValidationFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Token.")
			}

			ctx := access.WithPrincipal(c.Request().Context(), access.Principal{
				Subject:       subject,
				Authenticated: true,
			})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
