package ports

import (
	"context"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous persistence. Record must
// not block request handling; events for the same user keep their order.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
