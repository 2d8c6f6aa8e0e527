package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReportOptions is the configuration subset the formatter needs: where the
// observer is (for the header timestamp) and the thresholds echoed in the
// guidance section.
type ReportOptions struct {
	Location     *time.Location
	LISThreshold float64
	ShortBzNT    float64
	ShortSpdKms  float64
}

// FormatReport renders a reading and its assessment as the operator-facing
// plain-text report. Output is deterministic given its inputs and the current
// instant (taken from the package clock).
func FormatReport(opts ReportOptions, r Reading, a RiskAssessment) string {
	now := clock.Now().In(opts.Location)

	var b strings.Builder
	fmt.Fprintf(&b, "Space Weather Status — %s\n\n", now.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Local Impact Score: %.0f (%s)\n\n", a.Index, a.Category)
	b.WriteString("Inputs:\n")
	fmt.Fprintf(&b, "  • Kp (max next 24h): %.1f\n", r.KpMax24h)
	fmt.Fprintf(&b, "  • L1 Bz: %s nT\n", formatScalar(r.Bz, "%.1f"))
	fmt.Fprintf(&b, "  • L1 Speed: %s km/s\n", formatScalar(r.Speed, "%.0f"))
	fmt.Fprintf(&b, "  • Alerts — G:%d  R:%d  S:%d\n", r.Levels.G, r.Levels.R, r.Levels.S)
	fmt.Fprintf(&b, "  • Daylight now: %v\n\n", r.IsDaylight)
	b.WriteString("Guidance:\n")
	fmt.Fprintf(&b, "  • LIS ≥ %.0f triggers warnings (configurable).\n", opts.LISThreshold)
	fmt.Fprintf(&b, "  • Short-fuse trigger: Bz ≤ %.0f nT & Speed ≥ %.0f km/s (≈15–60 min lead).\n",
		opts.ShortBzNT, opts.ShortSpdKms)
	return b.String()
}

// formatScalar renders an optional telemetry value, showing unavailable feeds
// explicitly rather than as zero.
func formatScalar(v *float64, format string) string {
	if v == nil {
		return "unavailable"
	}
	return fmt.Sprintf(format, *v)
}

// Daylight window in local hours, start inclusive, end exclusive.
const (
	daylightStartHour = 7
	daylightEndHour   = 19
)

// IsDaylight reports whether the given instant falls in the observer's local
// daylight window.
func IsDaylight(now time.Time, loc *time.Location) bool {
	h := now.In(loc).Hour()
	return h >= daylightStartHour && h < daylightEndHour
}
