package services

import (
	"context"
	"sort"
	"time"

	"weigh-backend/internal/models"
	"weigh-backend/internal/repositories"
	"weigh-backend/internal/timeutil"
)

// Leaderboard windows.
const (
	WindowDaily   = "daily"
	WindowAllTime = "alltime"
)

// Leaderboard is a ranked board plus the requesting worker's own row.
type Leaderboard struct {
	Window    string                   `json:"window"`
	Standings []*models.WorkerStanding `json:"standings"`
	SelfRank  *models.WorkerStanding   `json:"self_rank,omitempty"`
}

type LeaderboardService struct {
	entryRepo   *repositories.EntryRepository
	statsRepo   *repositories.StatisticsRepository
	settingRepo *repositories.SettingRepository
}

func NewLeaderboardService(entryRepo *repositories.EntryRepository, statsRepo *repositories.StatisticsRepository, settingRepo *repositories.SettingRepository) *LeaderboardService {
	return &LeaderboardService{
		entryRepo:   entryRepo,
		statsRepo:   statsRepo,
		settingRepo: settingRepo,
	}
}

// Rank builds the board for a window, trimmed to the top limit entries
// (limit <= 0 returns the full board). Unknown window names fall back to
// the all-time board.
func (s *LeaderboardService) Rank(ctx context.Context, window string, limit, selfID int) (*Leaderboard, error) {
	if window == WindowDaily {
		return s.rankDaily(ctx, limit, selfID)
	}
	return s.rankAllTime(ctx, limit, selfID)
}

// rankDaily ranks today's WIB window. Daily earnings are entry count
// times the rate, plus the daily bonus once for any worker active today.
func (s *LeaderboardService) rankDaily(ctx context.Context, limit, selfID int) (*Leaderboard, error) {
	now := timeutil.Now()
	from := timeutil.StartOfDay(now).Format(time.RFC3339)
	to := timeutil.EndOfDay(now).Format(time.RFC3339Nano)

	counts, err := s.entryRepo.CountForWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingRepo.GetCompensation(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[int]*models.WorkerStatistics, len(stats))
	for _, st := range stats {
		totals[st.WorkerID] = st
	}

	standings := make([]*models.WorkerStanding, 0, len(counts))
	for workerID, count := range counts {
		st := totals[workerID]
		standing := &models.WorkerStanding{
			WorkerID:   workerID,
			EntryCount: count,
			ActiveDays: 1,
		}
		if st != nil {
			standing.WorkerName = st.WorkerName
			standing.TotalEntries = st.TotalEntries
			standing.Level = LevelFor(st.TotalEntries)
		}
		if settings.Enabled && count > 0 {
			standing.Earnings = int64(count)*settings.RatePerEntry + settings.DailyBonus
		}
		standings = append(standings, standing)
	}

	return s.assemble(WindowDaily, standings, limit, selfID), nil
}

// rankAllTime ranks by total entries across all history, with earnings
// derived from refreshed statistics.
func (s *LeaderboardService) rankAllTime(ctx context.Context, limit, selfID int) (*Leaderboard, error) {
	settings, err := s.settingRepo.GetCompensation(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]*models.WorkerStanding, 0, len(stats))
	for _, st := range stats {
		standing := &models.WorkerStanding{
			WorkerID:     st.WorkerID,
			WorkerName:   st.WorkerName,
			EntryCount:   st.TotalEntries,
			ActiveDays:   st.DaysWithEntries,
			TotalEntries: st.TotalEntries,
			Level:        LevelFor(st.TotalEntries),
		}
		if settings.Enabled {
			standing.Earnings = ComputeEarnings(st.TotalEntries, st.DaysWithEntries, settings.RatePerEntry, settings.DailyBonus).TotalEarnings
		}
		standings = append(standings, standing)
	}

	return s.assemble(WindowAllTime, standings, limit, selfID), nil
}

// assemble orders the full list and assigns positional ranks. Entry count
// descends, earnings break ties, worker id keeps the order stable. Ranks
// are the 1-based position in the ordered list, never score buckets, so
// tied workers still hold distinct consecutive ranks. The requesting
// worker's own row is located on the full list before trimming, so a
// worker outside the top-N still sees their true rank.
func (s *LeaderboardService) assemble(window string, standings []*models.WorkerStanding, limit, selfID int) *Leaderboard {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].EntryCount != standings[j].EntryCount {
			return standings[i].EntryCount > standings[j].EntryCount
		}
		if standings[i].Earnings != standings[j].Earnings {
			return standings[i].Earnings > standings[j].Earnings
		}
		return standings[i].WorkerID < standings[j].WorkerID
	})

	board := &Leaderboard{Window: window}
	for i, st := range standings {
		st.Rank = i + 1
		if st.WorkerID == selfID {
			board.SelfRank = st
		}
	}

	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	board.Standings = standings
	return board
}
