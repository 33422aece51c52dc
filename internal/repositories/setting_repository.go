package repositories

import (
	"context"

	"weigh-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingRepository struct {
	DB *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{DB: db}
}

// GetCompensation reads the single settings row (id pinned to 1).
func (r *SettingRepository) GetCompensation(ctx context.Context) (*models.CompensationSettings, error) {
	query := `
		SELECT rate_per_entry, daily_bonus, enabled, updated_at, updated_by
		FROM compensation_settings
		WHERE id = 1
	`

	s := &models.CompensationSettings{}
	err := r.DB.QueryRow(ctx, query).Scan(
		&s.RatePerEntry,
		&s.DailyBonus,
		&s.Enabled,
		&s.UpdatedAt,
		&s.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateCompensation overwrites the settings row. All derived earnings
// change with it; nothing stored needs invalidation because earnings are
// computed at read time.
func (r *SettingRepository) UpdateCompensation(ctx context.Context, req *models.UpdateCompensationRequest, actorID int) error {
	query := `
		UPDATE compensation_settings
		SET rate_per_entry=$1, daily_bonus=$2, enabled=$3, updated_at=NOW(), updated_by=$4
		WHERE id = 1
	`

	_, err := r.DB.Exec(ctx, query, req.RatePerEntry, req.DailyBonus, req.Enabled, actorID)
	return err
}

// GetPreference reads a per-worker preference value ("" when unset).
func (r *SettingRepository) GetPreference(ctx context.Context, workerID int, key string) (string, error) {
	var value string
	err := r.DB.QueryRow(ctx,
		`SELECT pref_value FROM worker_preferences WHERE worker_id=$1 AND pref_key=$2`,
		workerID, key).Scan(&value)
	if err != nil {
		return "", nil // unset
	}
	return value, nil
}

// SetPreference upserts a per-worker preference value.
func (r *SettingRepository) SetPreference(ctx context.Context, workerID int, key, value string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO worker_preferences (worker_id, pref_key, pref_value, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (worker_id, pref_key) DO UPDATE SET pref_value=$3, updated_at=NOW()`,
		workerID, key, value)
	return err
}
