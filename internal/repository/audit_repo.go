package repository

import (
	"context"
	"fmt"

	"contact-manager/internal/model"
)

type AuditRepository struct {
	db DB
}

func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry model.AuditEntry) error {
	// Actor may be absent; an empty string is not a valid UUID, store NULL.
	var actor any
	if entry.ActorID != "" {
		actor = entry.ActorID
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_entries (action, contact_id, actor_user_id, occurred_at)
		 VALUES ($1, $2, $3, $4)`,
		entry.Action, entry.ContactID, actor, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, action, contact_id, actor_user_id, occurred_at
		 FROM audit_entries ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0, limit)
	for rows.Next() {
		var (
			e     model.AuditEntry
			actor *string
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.ContactID, &actor, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if actor != nil {
			e.ActorID = *actor
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
