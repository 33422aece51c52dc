package models

import "time"

// CompensationSettings is the single admin-owned rate configuration.
// Earnings are always derived from entry counts and the current settings;
// no stored earnings figure is authoritative.
type CompensationSettings struct {
	RatePerEntry int64     `json:"rate_per_entry"` // rupiah per approved-or-pending entry
	DailyBonus   int64     `json:"daily_bonus"`    // rupiah per distinct active day
	Enabled      bool      `json:"enabled"`
	UpdatedAt    time.Time `json:"updated_at"`
	UpdatedBy    *int      `json:"updated_by,omitempty"`
}

// UpdateCompensationRequest represents the admin settings update body
type UpdateCompensationRequest struct {
	RatePerEntry int64 `json:"rate_per_entry"`
	DailyBonus   int64 `json:"daily_bonus"`
	Enabled      bool  `json:"enabled"`
}

// EarningsBreakdown is the derived compensation for one worker.
type EarningsBreakdown struct {
	EntriesEarnings int64 `json:"entries_earnings"`
	BonusEarnings   int64 `json:"bonus_earnings"`
	TotalEarnings   int64 `json:"total_earnings"`
}

// WorkerStatistics is a derived row refreshed after any entry mutation.
type WorkerStatistics struct {
	WorkerID        int       `json:"worker_id"`
	WorkerName      string    `json:"worker_name,omitempty"`
	TotalEntries    int       `json:"total_entries"`
	DaysWithEntries int       `json:"days_with_entries"` // distinct WIB dates with >=1 entry
	TotalEarnings   int64     `json:"total_earnings"`
	Level           string    `json:"level"`
	RefreshedAt     time.Time `json:"refreshed_at"`
}

// WorkerStanding is one worker's figures for a leaderboard window.
type WorkerStanding struct {
	WorkerID     int    `json:"worker_id"`
	WorkerName   string `json:"worker_name"`
	EntryCount   int    `json:"entry_count"`
	ActiveDays   int    `json:"active_days"`
	Earnings     int64  `json:"earnings"`
	Rank         int    `json:"rank"`
	Level        string `json:"level,omitempty"`
	TotalEntries int    `json:"total_entries,omitempty"` // all-time count, for level on daily boards
}
