package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type fullNameUpdateRequest struct {
	NewFullName string `json:"new_full_name" validate:"required"`
}

type emailUpdateRequest struct {
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type documentUpdateRequest struct {
	Password    string `json:"password" validate:"required"`
	NewDocument string `json:"new_document" validate:"required,document"`
}

type passwordUpdateRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type roleUpdateRequest struct {
	NewRole string `json:"new_role" validate:"required"`
}

type deleteUserRequest struct {
	Password string `json:"password" validate:"required"`
}

// GetProfile returns the profile for the given user id. The owner sees the
// full profile; everyone else gets the public subset.
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateFullName(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req fullNameUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.UpdateFullName(c.Request().Context(), id, req.NewFullName); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Full name updated successfully"})
}

func (h *UserHandler) UpdateEmail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req emailUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.UpdateEmail(c.Request().Context(), id, req.Password, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email updated successfully"})
}

func (h *UserHandler) UpdateDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req documentUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.UpdateDocument(c.Request().Context(), id, req.Password, req.NewDocument); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Document updated successfully"})
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req passwordUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), id, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req roleUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.ChangeRole(c.Request().Context(), id, req.NewRole); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User role updated successfully"})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req deleteUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), id, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// bindAndValidate decodes the JSON body into req and runs struct validation,
// converting failures into 400 responses.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
