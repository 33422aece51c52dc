package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/barcode"
	"weigh-backend/internal/models"
	"weigh-backend/internal/repositories"
)

// auditLog records an audit row best-effort: the primary mutation has
// already committed, so a failed audit write is logged, never surfaced.
func auditLog(ctx context.Context, repo *repositories.AuditLogRepository, actorID int, action, resource, details string) {
	if repo == nil {
		return
	}
	err := repo.Create(ctx, &models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Resource: resource,
		Details:  details,
	})
	if err != nil {
		log.Printf("[Audit] Failed to record %s on %s: %v", action, resource, err)
	}
}

type EntryService struct {
	entryRepo *repositories.EntryRepository
	statsRepo *repositories.StatisticsRepository
	auditRepo *repositories.AuditLogRepository
}

func NewEntryService(entryRepo *repositories.EntryRepository, statsRepo *repositories.StatisticsRepository, auditRepo *repositories.AuditLogRepository) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		statsRepo: statsRepo,
		auditRepo: auditRepo,
	}
}

// Create validates and inserts a new entry for the acting worker. Receipt
// uniqueness is delegated to the database constraint, so concurrent
// submissions of the same receipt cannot both succeed.
func (s *EntryService) Create(ctx context.Context, req *models.CreateEntryRequest, workerID int) (*models.Entry, error) {
	if err := barcode.ValidateFormat(req.ReceiptNumber); err != nil {
		return nil, err
	}
	if req.ManifestWeight <= 0 {
		return nil, fmt.Errorf("%w: manifest_weight must be positive", apperrors.ErrValidation)
	}
	if req.MeasuredWeight <= 0 {
		return nil, fmt.Errorf("%w: measured_weight must be positive", apperrors.ErrValidation)
	}
	if req.PhotoURL1 == "" {
		return nil, fmt.Errorf("%w: first evidence photo is required", apperrors.ErrValidation)
	}

	entry := &models.Entry{
		ReceiptNumber:  req.ReceiptNumber,
		WorkerID:       workerID,
		ManifestWeight: req.ManifestWeight,
		MeasuredWeight: req.MeasuredWeight,
		Discrepancy:    models.Discrepancy(req.ManifestWeight, req.MeasuredWeight),
		Status:         models.StatusPending,
		PhotoURL1:      req.PhotoURL1,
		PhotoURL2:      req.PhotoURL2,
		Note:           req.Note,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.refreshStats(ctx, workerID)
	auditLog(ctx, s.auditRepo, workerID, models.AuditEntryCreate, fmt.Sprintf("entry:%d", entry.ID),
		fmt.Sprintf(`{"receipt_number":%q,"discrepancy":%.2f}`, entry.ReceiptNumber, entry.Discrepancy))
	return entry, nil
}

func (s *EntryService) Get(ctx context.Context, id int) (*models.Entry, error) {
	return s.entryRepo.Get(ctx, id)
}

// List returns all entries for admins, or the worker's own entries. A
// non-empty date (2006-01-02) restricts the result to that WIB calendar day.
func (s *EntryService) List(ctx context.Context, workerID int, role, date string) ([]*models.Entry, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, date)
		}
	}
	if role == models.RoleAdmin {
		return s.entryRepo.List(ctx, date)
	}
	return s.entryRepo.ListByWorker(ctx, workerID, date)
}

// UpdateNote changes the free-text note. Workers may edit only their own
// entries; admins may edit any.
func (s *EntryService) UpdateNote(ctx context.Context, id int, note string, actorID int, role string) error {
	entry, err := s.entryRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && entry.WorkerID != actorID {
		return fmt.Errorf("%w: entry belongs to another worker", apperrors.ErrForbidden)
	}

	if err := s.entryRepo.UpdateNote(ctx, id, note, actorID); err != nil {
		return err
	}

	auditLog(ctx, s.auditRepo, actorID, models.AuditEntryNote, fmt.Sprintf("entry:%d", id), "")
	return nil
}

// UpdateStatus moves an entry through review. Admin only.
func (s *EntryService) UpdateStatus(ctx context.Context, id int, status string, actorID int) error {
	if !validStatus(status) {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}

	if err := s.entryRepo.UpdateStatus(ctx, id, status, actorID); err != nil {
		return err
	}

	auditLog(ctx, s.auditRepo, actorID, models.AuditEntryStatus, fmt.Sprintf("entry:%d", id),
		fmt.Sprintf(`{"status":%q}`, status))
	return nil
}

// Delete removes an entry. Admin only; the audit row keeps a snapshot of
// the deleted business facts.
func (s *EntryService) Delete(ctx context.Context, id int, actorID int) error {
	entry, err := s.entryRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshStats(ctx, entry.WorkerID)
	details, _ := json.Marshal(models.EntrySnapshot{
		ID:             entry.ID,
		ReceiptNumber:  entry.ReceiptNumber,
		WorkerID:       entry.WorkerID,
		ManifestWeight: entry.ManifestWeight,
		MeasuredWeight: entry.MeasuredWeight,
	})
	auditLog(ctx, s.auditRepo, actorID, models.AuditEntryDelete, fmt.Sprintf("entry:%d", id), string(details))
	return nil
}

// BulkUpdateStatus applies one status to many entries. Admin only.
func (s *EntryService) BulkUpdateStatus(ctx context.Context, req *models.BulkStatusRequest, actorID int) ([]int, error) {
	if len(req.IDs) == 0 {
		return nil, fmt.Errorf("%w: ids must not be empty", apperrors.ErrValidation)
	}
	if !validStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	affected, err := s.entryRepo.BulkUpdateStatus(ctx, req.IDs, req.Status, actorID)
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]any{"ids": affected, "status": req.Status})
	auditLog(ctx, s.auditRepo, actorID, models.AuditEntryBulkStatus, "entries", string(details))
	return affected, nil
}

// BulkDelete removes many entries and refreshes statistics for every
// affected worker. Admin only.
func (s *EntryService) BulkDelete(ctx context.Context, req *models.BulkDeleteRequest, actorID int) (int, error) {
	if len(req.IDs) == 0 {
		return 0, fmt.Errorf("%w: ids must not be empty", apperrors.ErrValidation)
	}

	snapshots, err := s.entryRepo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return 0, err
	}

	workerIDs := make([]int, 0, len(snapshots))
	for _, snap := range snapshots {
		workerIDs = append(workerIDs, snap.WorkerID)
	}
	if err := s.statsRepo.RefreshMany(ctx, workerIDs); err != nil {
		log.Printf("[Statistics] Refresh after bulk delete failed: %v", err)
	}

	details, _ := json.Marshal(snapshots)
	auditLog(ctx, s.auditRepo, actorID, models.AuditEntryBulkDelete, "entries", string(details))
	return len(snapshots), nil
}

func (s *EntryService) refreshStats(ctx context.Context, workerID int) {
	if err := s.statsRepo.Refresh(ctx, workerID); err != nil {
		log.Printf("[Statistics] Refresh for worker %d failed: %v", workerID, err)
	}
}

func validStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
		return true
	}
	return false
}
