package models

import "time"

// LocationSample is an ephemeral device fix. It is never persisted as its
// own entity - it is burned into watermark pixels and optionally carried
// in entry metadata. A manual sample uses the lat=lon=0 sentinel with
// ManualEntry set, meaning "no GPS, textual address only".
type LocationSample struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Accuracy    float64   `json:"accuracy"` // radius in meters
	CapturedAt  time.Time `json:"captured_at"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	ManualEntry bool      `json:"manual_entry"`
}

// HasCoordinates reports whether the sample carries a real GPS fix.
func (s LocationSample) HasCoordinates() bool {
	return !s.ManualEntry && (s.Latitude != 0 || s.Longitude != 0)
}
