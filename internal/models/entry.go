package models

import (
	"math"
	"time"
)

// Entry statuses. Status is mutated by admins only.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Entry struct {
	ID             int       `json:"id"`
	ReceiptNumber  string    `json:"receipt_number"`
	WorkerID       int       `json:"worker_id"`
	WorkerName     string    `json:"worker_name,omitempty"` // Denormalized for display
	ManifestWeight float64   `json:"manifest_weight"`
	MeasuredWeight float64   `json:"measured_weight"`
	Discrepancy    float64   `json:"discrepancy"` // measured - manifest, kg, 2 decimals
	Status         string    `json:"status"`      // 'pending', 'approved', 'rejected'
	PhotoURL1      string    `json:"photo_url_1"` // Required at creation
	PhotoURL2      *string   `json:"photo_url_2,omitempty"`
	Note           *string   `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UpdatedBy      *int      `json:"updated_by,omitempty"`
}

// Discrepancy is measured minus manifested weight rounded to two decimals.
func Discrepancy(manifest, measured float64) float64 {
	return math.Round((measured-manifest)*100) / 100
}

// CreateEntryRequest represents the request body for creating an entry
type CreateEntryRequest struct {
	ReceiptNumber  string  `json:"receipt_number"`
	ManifestWeight float64 `json:"manifest_weight"`
	MeasuredWeight float64 `json:"measured_weight"`
	PhotoURL1      string  `json:"photo_url_1"`
	PhotoURL2      *string `json:"photo_url_2,omitempty"`
	Note           *string `json:"note,omitempty"`
}

// UpdateNoteRequest represents the request body for updating an entry's note
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// UpdateStatusRequest represents the request body for an admin status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BulkStatusRequest applies one status to a set of entries by id
type BulkStatusRequest struct {
	IDs    []int  `json:"ids"`
	Status string `json:"status"`
}

// BulkDeleteRequest deletes a set of entries by id
type BulkDeleteRequest struct {
	IDs []int `json:"ids"`
}

// EntrySnapshot is the audit-logged remnant of a deleted entry.
// Deletes are unrecoverable, so the snapshot keeps the business facts.
type EntrySnapshot struct {
	ID             int     `json:"id"`
	ReceiptNumber  string  `json:"receipt_number"`
	WorkerID       int     `json:"worker_id"`
	ManifestWeight float64 `json:"manifest_weight"`
	MeasuredWeight float64 `json:"measured_weight"`
}
