package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes and
//     stable message texts.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes and message texts.
	// Clients depend on this mapping; do not reword casually.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, domain.ErrInvalidPassword):
		// Message chosen by the failing call site.
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid Token."
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "Email already exists."
	case errors.Is(err, domain.ErrDocumentExists):
		return http.StatusConflict, "Document already exists."
	case errors.Is(err, domain.ErrSamePassword):
		return http.StatusConflict, "Passwords must not be the same."
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role. Valid roles are CLIENT or FREELANCER."
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid project status."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
