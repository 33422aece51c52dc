package repositories

import (
	"context"
	"errors"
	"fmt"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

type EntryRepository struct {
	DB *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{DB: db}
}

// Create inserts a new entry. Receipt uniqueness is enforced by the
// UNIQUE constraint on entries.receipt_number; a constraint violation is
// translated to ErrDuplicateReceipt so there is no check-then-insert race.
func (r *EntryRepository) Create(ctx context.Context, e *models.Entry) error {
	query := `
		INSERT INTO entries (receipt_number, worker_id, manifest_weight, measured_weight,
		                     discrepancy, status, photo_url_1, photo_url_2, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		e.ReceiptNumber,
		e.WorkerID,
		e.ManifestWeight,
		e.MeasuredWeight,
		e.Discrepancy,
		e.Status,
		e.PhotoURL1,
		e.PhotoURL2,
		e.Note,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateReceipt, e.ReceiptNumber)
	}
	return err
}

func (r *EntryRepository) Get(ctx context.Context, id int) (*models.Entry, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT e.id, e.receipt_number, e.worker_id, w.name, e.manifest_weight, e.measured_weight,
		        e.discrepancy, e.status, e.photo_url_1, e.photo_url_2, e.note,
		        e.created_at, e.updated_at, e.updated_by
		 FROM entries e
		 JOIN workers w ON w.id = e.worker_id
		 WHERE e.id=$1`, id)

	return scanEntry(row)
}

func (r *EntryRepository) GetByReceipt(ctx context.Context, receipt string) (*models.Entry, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT e.id, e.receipt_number, e.worker_id, w.name, e.manifest_weight, e.measured_weight,
		        e.discrepancy, e.status, e.photo_url_1, e.photo_url_2, e.note,
		        e.created_at, e.updated_at, e.updated_by
		 FROM entries e
		 JOIN workers w ON w.id = e.worker_id
		 WHERE e.receipt_number=$1`, receipt)

	return scanEntry(row)
}

// List returns all entries, optionally filtered to one WIB calendar date
// (date "" means no filter; format 2006-01-02).
func (r *EntryRepository) List(ctx context.Context, date string) ([]*models.Entry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT e.id, e.receipt_number, e.worker_id, w.name, e.manifest_weight, e.measured_weight,
		        e.discrepancy, e.status, e.photo_url_1, e.photo_url_2, e.note,
		        e.created_at, e.updated_at, e.updated_by
		 FROM entries e
		 JOIN workers w ON w.id = e.worker_id
		 WHERE ($1 = '' OR (e.created_at AT TIME ZONE 'Asia/Jakarta')::date = $1::date)
		 ORDER BY e.created_at DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *EntryRepository) ListByWorker(ctx context.Context, workerID int, date string) ([]*models.Entry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT e.id, e.receipt_number, e.worker_id, w.name, e.manifest_weight, e.measured_weight,
		        e.discrepancy, e.status, e.photo_url_1, e.photo_url_2, e.note,
		        e.created_at, e.updated_at, e.updated_by
		 FROM entries e
		 JOIN workers w ON w.id = e.worker_id
		 WHERE e.worker_id=$1
		   AND ($2 = '' OR (e.created_at AT TIME ZONE 'Asia/Jakarta')::date = $2::date)
		 ORDER BY e.created_at DESC`, workerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UpdateNote sets the free-text note. Ownership is checked by the service.
func (r *EntryRepository) UpdateNote(ctx context.Context, id int, note string, actorID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE entries SET note=$1, updated_at=NOW(), updated_by=$2 WHERE id=$3`,
		note, actorID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the review status. Role is checked by the service.
func (r *EntryRepository) UpdateStatus(ctx context.Context, id int, status string, actorID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE entries SET status=$1, updated_at=NOW(), updated_by=$2 WHERE id=$3`,
		status, actorID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// BulkUpdateStatus applies one status to every listed id and returns the
// ids actually affected, for the audit trail.
func (r *EntryRepository) BulkUpdateStatus(ctx context.Context, ids []int, status string, actorID int) ([]int, error) {
	rows, err := r.DB.Query(ctx,
		`UPDATE entries SET status=$1, updated_at=NOW(), updated_by=$2
		 WHERE id = ANY($3)
		 RETURNING id`, status, actorID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var affected []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		affected = append(affected, id)
	}
	return affected, rows.Err()
}

// BulkDelete removes every listed id and returns a snapshot of the deleted
// rows. Deletes are unrecoverable, so the snapshot is audit-logged upstream.
func (r *EntryRepository) BulkDelete(ctx context.Context, ids []int) ([]models.EntrySnapshot, error) {
	rows, err := r.DB.Query(ctx,
		`DELETE FROM entries WHERE id = ANY($1)
		 RETURNING id, receipt_number, worker_id, manifest_weight, measured_weight`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.EntrySnapshot
	for rows.Next() {
		var s models.EntrySnapshot
		if err := rows.Scan(&s.ID, &s.ReceiptNumber, &s.WorkerID, &s.ManifestWeight, &s.MeasuredWeight); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// CountForWindow returns per-worker entry counts created between from and to.
func (r *EntryRepository) CountForWindow(ctx context.Context, from, to string) (map[int]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT worker_id, COUNT(*)
		 FROM entries
		 WHERE created_at >= $1::timestamptz AND created_at <= $2::timestamptz
		 GROUP BY worker_id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var workerID, count int
		if err := rows.Scan(&workerID, &count); err != nil {
			return nil, err
		}
		counts[workerID] = count
	}
	return counts, rows.Err()
}

func scanEntry(row pgx.Row) (*models.Entry, error) {
	var e models.Entry
	err := row.Scan(&e.ID, &e.ReceiptNumber, &e.WorkerID, &e.WorkerName, &e.ManifestWeight,
		&e.MeasuredWeight, &e.Discrepancy, &e.Status, &e.PhotoURL1, &e.PhotoURL2, &e.Note,
		&e.CreatedAt, &e.UpdatedAt, &e.UpdatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*models.Entry, error) {
	var entries []*models.Entry
	for rows.Next() {
		var e models.Entry
		err := rows.Scan(&e.ID, &e.ReceiptNumber, &e.WorkerID, &e.WorkerName, &e.ManifestWeight,
			&e.MeasuredWeight, &e.Discrepancy, &e.Status, &e.PhotoURL1, &e.PhotoURL2, &e.Note,
			&e.CreatedAt, &e.UpdatedAt, &e.UpdatedBy)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
