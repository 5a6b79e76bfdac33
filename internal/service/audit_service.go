package service

import (
	"context"
	"log/slog"
	"time"

	"contact-manager/internal/model"
)

type auditStore interface {
	Insert(ctx context.Context, entry model.AuditEntry) error
	List(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// AuditService keeps a trail of contact mutations. Writes are best-effort:
// a failed audit insert is logged, never bubbled up to fail the mutation.
type AuditService struct {
	store auditStore
}

func NewAuditService(store auditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Record(ctx context.Context, action string, contactID string, actor model.AuthClaims) {
	entry := model.AuditEntry{
		Action:     action,
		ContactID:  contactID,
		ActorID:    actor.UserID,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, entry); err != nil {
		slog.Warn("audit write failed", "action", action, "contact_id", contactID, "error", err)
	}
}

func (s *AuditService) List(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.store.List(ctx, limit)
}
