package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project listing.
type ProjectStatus string

const (
	StatusOpen        ProjectStatus = "OPEN"
	StatusNegotiating ProjectStatus = "NEGOTIATING"
	StatusInProgress  ProjectStatus = "IN_PROGRESS"
	StatusFinished    ProjectStatus = "FINISHED"
	StatusCancelled   ProjectStatus = "CANCELLED"
)

// ParseProjectStatus converts a user-supplied status name into a
// ProjectStatus. Unknown values return ErrInvalidStatus.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusNegotiating:
		return StatusNegotiating, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusFinished:
		return StatusFinished, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Deadline is the agreed execution window of a project.
type Deadline struct {
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
}

// Project is a work listing published by a client. Budget is stored in minor
// currency units (cents) to avoid floating-point drift.
type Project struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Deadline        Deadline      `json:"deadline"`
	EstimatedBudget int64         `json:"estimated_budget_cents"`
	Status          ProjectStatus `json:"status"`
	OwnerID         uuid.UUID     `json:"owner_id"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
