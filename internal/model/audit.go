package model

import "time"

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditEntry records a contact mutation and who performed it.
type AuditEntry struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	ContactID  string    `json:"contact_id"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
