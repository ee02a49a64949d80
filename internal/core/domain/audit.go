package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the security event trail.
const (
	AuditLoginSucceeded  = "login_succeeded"
	AuditLoginFailed     = "login_failed"
	AuditUserRegistered  = "user_registered"
	AuditFullNameUpdated = "full_name_updated"
	AuditEmailUpdated    = "email_updated"
	AuditDocumentUpdated = "document_updated"
	AuditPasswordUpdated = "password_updated"
	AuditRoleChanged     = "role_changed"
	AuditUserDeleted     = "user_deleted"
	AuditProjectCreated  = "project_created"
	AuditProjectUpdated  = "project_updated"
	AuditProjectDeleted  = "project_deleted"
)

// AuditEvent is an append-only record of a security-relevant action.
// Events for the same user are persisted in the order they were recorded.
type AuditEvent struct {
	UserID uuid.UUID `json:"user_id"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}
