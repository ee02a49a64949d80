package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body.Error
}

func TestErrorHandlerDomainMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid Token."},
		{"invalid password", &domain.PasswordError{Message: "Invalid password."}, http.StatusUnauthorized, "Invalid password."},
		{"delete password", &domain.PasswordError{Message: "Incorrect password. The project was not deleted."}, http.StatusUnauthorized, "Incorrect password. The project was not deleted."},
		{"access denied", domain.DeniedAccess(), http.StatusForbidden, "Access denied."},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "Email already exists."},
		{"document exists", domain.ErrDocumentExists, http.StatusConflict, "Document already exists."},
		{"same password", domain.ErrSamePassword, http.StatusConflict, "Passwords must not be the same."},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role. Valid roles are CLIENT or FREELANCER."},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "Invalid project status."},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found."},
		{"project not found", domain.ErrProjectNotFound, http.StatusNotFound, "Project not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := renderError(t, tt.err)
			if code != tt.wantCode {
				t.Fatalf("code = %d, want %d", code, tt.wantCode)
			}
			if msg != tt.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestErrorHandlerWrappedDomainError(t *testing.T) {
	code, msg := renderError(t, fmt.Errorf("find user: %w", domain.ErrUserNotFound))
	if code != http.StatusNotFound || msg != "User not found." {
		t.Fatalf("wrapped error = %d %q, want 404 %q", code, msg, "User not found.")
	}
}

func TestErrorHandlerEchoHTTPErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Token."))
	if code != http.StatusUnauthorized || msg != "Invalid Token." {
		t.Fatalf("got %d %q, want 401 %q", code, msg, "Invalid Token.")
	}
}

func TestErrorHandlerUnexpectedError(t *testing.T) {
	code, msg := renderError(t, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("message = %q, must not leak the cause", msg)
	}
}
