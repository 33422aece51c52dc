package timeutil

import (
	"time"
)

// WIB is Western Indonesia Time (UTC+7). Daily leaderboard windows and
// bonus-day counting bucket on WIB calendar dates.
var WIB *time.Location

func init() {
	var err error
	WIB, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback: create fixed zone if Asia/Jakarta not available
		WIB = time.FixedZone("WIB", 7*60*60) // UTC+7
	}
}

// Now returns the current time in WIB
func Now() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts any time to WIB
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// StartOfDay returns the start of day (00:00:00) in WIB for the given time
func StartOfDay(t time.Time) time.Time {
	wib := t.In(WIB)
	return time.Date(wib.Year(), wib.Month(), wib.Day(), 0, 0, 0, 0, WIB)
}

// EndOfDay returns the end of day (23:59:59.999999999) in WIB for the given time
func EndOfDay(t time.Time) time.Time {
	wib := t.In(WIB)
	return time.Date(wib.Year(), wib.Month(), wib.Day(), 23, 59, 59, 999999999, WIB)
}

// DateKey returns the WIB calendar date string for the given time
func DateKey(t time.Time) string {
	return t.In(WIB).Format(DateLayout)
}

// Common layouts for WIB formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04 WIB"
)
