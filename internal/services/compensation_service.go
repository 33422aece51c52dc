package services

import (
	"context"
	"errors"
	"fmt"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/models"
	"weigh-backend/internal/repositories"
)

// levelBand maps a total-entry range to a worker level. Bands are
// checked first-match in order; the last band is open-ended.
type levelBand struct {
	min, max int // max -1 = unbounded
	name     string
}

var levelBands = []levelBand{
	{0, 99, "Beginner"},
	{100, 499, "Bronze"},
	{500, 999, "Silver"},
	{1000, 4999, "Gold"},
	{5000, -1, "Diamond"},
}

// LevelFor returns the level name for an all-time entry count.
func LevelFor(totalEntries int) string {
	for _, b := range levelBands {
		if totalEntries >= b.min && (b.max < 0 || totalEntries <= b.max) {
			return b.name
		}
	}
	return levelBands[0].name
}

// ComputeEarnings derives a breakdown from counts and the current rates.
// Pure arithmetic in int64 rupiah; no rounding is ever needed.
func ComputeEarnings(entryCount, activeDays int, ratePerEntry, dailyBonus int64) models.EarningsBreakdown {
	entries := int64(entryCount) * ratePerEntry
	bonus := int64(activeDays) * dailyBonus
	return models.EarningsBreakdown{
		EntriesEarnings: entries,
		BonusEarnings:   bonus,
		TotalEarnings:   entries + bonus,
	}
}

type CompensationService struct {
	settingRepo *repositories.SettingRepository
	statsRepo   *repositories.StatisticsRepository
	auditRepo   *repositories.AuditLogRepository
}

func NewCompensationService(settingRepo *repositories.SettingRepository, statsRepo *repositories.StatisticsRepository, auditRepo *repositories.AuditLogRepository) *CompensationService {
	return &CompensationService{
		settingRepo: settingRepo,
		statsRepo:   statsRepo,
		auditRepo:   auditRepo,
	}
}

func (s *CompensationService) GetSettings(ctx context.Context) (*models.CompensationSettings, error) {
	return s.settingRepo.GetCompensation(ctx)
}

func (s *CompensationService) UpdateSettings(ctx context.Context, req *models.UpdateCompensationRequest, actorID int) error {
	if req.RatePerEntry < 0 {
		return fmt.Errorf("%w: rate_per_entry must not be negative", apperrors.ErrValidation)
	}
	if req.DailyBonus < 0 {
		return fmt.Errorf("%w: daily_bonus must not be negative", apperrors.ErrValidation)
	}

	old, err := s.settingRepo.GetCompensation(ctx)
	if err != nil {
		return err
	}

	if err := s.settingRepo.UpdateCompensation(ctx, req, actorID); err != nil {
		return err
	}

	auditLog(ctx, s.auditRepo, actorID, models.AuditSettingsUpdate, "compensation_settings",
		fmt.Sprintf(`{"old":{"rate_per_entry":%d,"daily_bonus":%d,"enabled":%t},"new":{"rate_per_entry":%d,"daily_bonus":%d,"enabled":%t}}`,
			old.RatePerEntry, old.DailyBonus, old.Enabled,
			req.RatePerEntry, req.DailyBonus, req.Enabled))
	return nil
}

// WorkerEarnings derives the all-time earnings for one worker from its
// refreshed statistics and the current rates. When compensation is
// disabled the breakdown is zero across the board.
func (s *CompensationService) WorkerEarnings(ctx context.Context, workerID int) (*models.WorkerStatistics, *models.EarningsBreakdown, error) {
	settings, err := s.settingRepo.GetCompensation(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.statsRepo.Get(ctx, workerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// No entries yet; the breakdown is legitimately zero.
		stats = &models.WorkerStatistics{WorkerID: workerID}
	} else if err != nil {
		return nil, nil, err
	}

	var breakdown models.EarningsBreakdown
	if settings.Enabled {
		breakdown = ComputeEarnings(stats.TotalEntries, stats.DaysWithEntries, settings.RatePerEntry, settings.DailyBonus)
	}
	stats.TotalEarnings = breakdown.TotalEarnings
	stats.Level = LevelFor(stats.TotalEntries)

	return stats, &breakdown, nil
}
