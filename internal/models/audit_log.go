package models

import "time"

// AuditLog is append-only. Rows are never updated or deleted, and a failed
// write must never abort the action that triggered it.
type AuditLog struct {
	ID        int       `json:"id"`
	ActorID   int       `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	Action    string    `json:"action"`            // e.g. 'entry.create', 'entry.bulk_delete'
	Resource  string    `json:"resource"`          // e.g. 'entry:42'
	Details   string    `json:"details,omitempty"` // JSON payload
	CreatedAt time.Time `json:"created_at"`
}

// Audit action names used by the services.
const (
	AuditEntryCreate     = "entry.create"
	AuditEntryNote       = "entry.update_note"
	AuditEntryStatus     = "entry.update_status"
	AuditEntryDelete     = "entry.delete"
	AuditEntryBulkStatus = "entry.bulk_status"
	AuditEntryBulkDelete = "entry.bulk_delete"
	AuditSettingsUpdate  = "compensation.update_settings"
)
