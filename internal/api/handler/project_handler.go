package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Title                string `json:"title" validate:"required"`
	Description          string `json:"description" validate:"required"`
	DeadlineStart        string `json:"deadline_start" validate:"required"`
	DeadlineEnd          string `json:"deadline_end" validate:"required"`
	EstimatedBudgetCents int64  `json:"estimated_budget_cents" validate:"required,gt=0"`
}

type titleUpdateRequest struct {
	NewTitle string `json:"new_title" validate:"required"`
}

type descriptionUpdateRequest struct {
	NewDescription string `json:"new_description" validate:"required"`
}

type deadlineUpdateRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type budgetUpdateRequest struct {
	NewEstimatedBudgetCents int64 `json:"new_estimated_budget_cents" validate:"required,gt=0"`
}

type statusUpdateRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
}

type deleteProjectRequest struct {
	Password string `json:"password" validate:"required"`
}

// parseDate accepts ISO dates (2025-04-10) for deadline fields.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return t, nil
}

// Create publishes a new project listing owned by the caller.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start, err := parseDate(req.DeadlineStart)
	if err != nil {
		return err
	}
	end, err := parseDate(req.DeadlineEnd)
	if err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), ports.CreateProjectInput{
		Title:                req.Title,
		Description:          req.Description,
		DeadlineStart:        start,
		DeadlineEnd:          end,
		EstimatedBudgetCents: req.EstimatedBudgetCents,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// List returns one page of project listings.
func (h *ProjectHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 0)
	size := queryInt(c, "size", 10)

	result, err := h.projectService.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single project listing.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) UpdateTitle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req titleUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.projectService.UpdateTitle(c.Request().Context(), id, req.NewTitle); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Title updated successfully"})
}

func (h *ProjectHandler) UpdateDescription(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req descriptionUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.projectService.UpdateDescription(c.Request().Context(), id, req.NewDescription); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Description updated successfully"})
}

func (h *ProjectHandler) UpdateDeadline(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req deadlineUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}

	if err := h.projectService.UpdateDeadline(c.Request().Context(), id, start, end); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Deadline updated successfully"})
}

func (h *ProjectHandler) UpdateEstimatedBudget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req budgetUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.projectService.UpdateEstimatedBudget(c.Request().Context(), id, req.NewEstimatedBudgetCents); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Estimated budget updated successfully"})
}

func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req statusUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.projectService.UpdateStatus(c.Request().Context(), id, req.NewStatus); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Status updated successfully"})
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req deleteProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), id, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}
