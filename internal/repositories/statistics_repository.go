package repositories

import (
	"context"
	"errors"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatisticsRepository struct {
	DB *pgxpool.Pool
}

func NewStatisticsRepository(db *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

// Refresh recomputes the derived counts for one worker from the entries
// table. days_with_entries buckets on WIB calendar dates.
func (r *StatisticsRepository) Refresh(ctx context.Context, workerID int) error {
	query := `
		INSERT INTO worker_statistics (worker_id, total_entries, days_with_entries, refreshed_at)
		SELECT $1,
		       COUNT(*),
		       COUNT(DISTINCT (created_at AT TIME ZONE 'Asia/Jakarta')::date),
		       NOW()
		FROM entries
		WHERE worker_id = $1
		ON CONFLICT (worker_id) DO UPDATE
		SET total_entries = EXCLUDED.total_entries,
		    days_with_entries = EXCLUDED.days_with_entries,
		    refreshed_at = EXCLUDED.refreshed_at
	`

	_, err := r.DB.Exec(ctx, query, workerID)
	return err
}

// RefreshMany refreshes statistics for a set of workers (bulk operations).
func (r *StatisticsRepository) RefreshMany(ctx context.Context, workerIDs []int) error {
	seen := make(map[int]bool)
	for _, id := range workerIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := r.Refresh(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *StatisticsRepository) Get(ctx context.Context, workerID int) (*models.WorkerStatistics, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT s.worker_id, w.name, s.total_entries, s.days_with_entries, s.refreshed_at
		 FROM worker_statistics s
		 JOIN workers w ON w.id = s.worker_id
		 WHERE s.worker_id=$1`, workerID)

	var s models.WorkerStatistics
	err := row.Scan(&s.WorkerID, &s.WorkerName, &s.TotalEntries, &s.DaysWithEntries, &s.RefreshedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatisticsRepository) ListAll(ctx context.Context) ([]*models.WorkerStatistics, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.worker_id, w.name, s.total_entries, s.days_with_entries, s.refreshed_at
		 FROM worker_statistics s
		 JOIN workers w ON w.id = s.worker_id
		 ORDER BY s.total_entries DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.WorkerStatistics
	for rows.Next() {
		var s models.WorkerStatistics
		if err := rows.Scan(&s.WorkerID, &s.WorkerName, &s.TotalEntries, &s.DaysWithEntries, &s.RefreshedAt); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
