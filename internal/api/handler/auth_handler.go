package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace-api/internal/api/metrics"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Document    string `json:"document" validate:"required,document"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	MainRole    string `json:"main_role" validate:"required"`
	CurrentRole string `json:"current_role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account. No token is issued; the caller must
// log in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName:    req.FullName,
		Document:    req.Document,
		Email:       req.Email,
		Password:    req.Password,
		MainRole:    req.MainRole,
		CurrentRole: req.CurrentRole,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(req.MainRole).Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
