package domain

import "fmt"

// AlertLevels holds the maximum NOAA scale level (0–5) currently active for
// each of the geomagnetic storm (G), radio blackout (R), and radiation storm
// (S) scales. The zero value means no active alerts.
type AlertLevels struct {
	G int
	R int
	S int
}

// String renders levels in SWPC notation, e.g. "G2 R0 S1".
func (l AlertLevels) String() string {
	return fmt.Sprintf("G%d R%d S%d", l.G, l.R, l.S)
}

// AnyAtLeast reports whether at least one scale meets or exceeds its minimum.
func (l AlertLevels) AnyAtLeast(minG, minR, minS int) bool {
	return l.G >= minG || l.R >= minR || l.S >= minS
}

// Reading is a snapshot of space-weather telemetry at one evaluation instant.
// Readings are built fresh on every scheduler tick and never persisted.
//
// Bz and Speed are nil when their feed was unavailable or malformed; KpMax24h
// and Levels default to zero in the same situation.
type Reading struct {
	KpMax24h   float64  // max forecast planetary K-index over the next 24h
	Bz         *float64 // latest L1 Bz (nT), nil if unavailable
	Speed      *float64 // latest L1 solar wind speed (km/s), nil if unavailable
	Levels     AlertLevels
	IsDaylight bool // observer's local hour falls in the daylight window
}

// Category is the operator-facing risk label derived from the index.
type Category string

const (
	CategoryLow      Category = "Low"
	CategoryElevated Category = "Elevated"
	CategoryModerate Category = "Moderate"
	CategoryHigh     Category = "High"
	CategorySevere   Category = "Severe"
)

// CategoryFor maps an index to its category. Breakpoints are inclusive on the
// lower bound: 80 Severe, 60 High, 40 Moderate, 20 Elevated, else Low.
func CategoryFor(index float64) Category {
	switch {
	case index >= 80:
		return CategorySevere
	case index >= 60:
		return CategoryHigh
	case index >= 40:
		return CategoryModerate
	case index >= 20:
		return CategoryElevated
	default:
		return CategoryLow
	}
}

// RiskAssessment is the scored form of a Reading.
type RiskAssessment struct {
	Index     float64  `json:"index"` // Local Impact Score, 0–100
	Category  Category `json:"category"`
	ShortFuse bool     `json:"short_fuse"` // imminent-impact condition met
}
