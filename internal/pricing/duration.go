package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// TimeLayout is the fixed calendar layout booking timestamps are
// stored in.  All duration arithmetic parses this layout.
const TimeLayout = "2006-01-02 15:04:05"

// DisplayLayout is the human-facing form used in responses,
// e.g. "02-Jan-2006 03:04 PM".
const DisplayLayout = "02-Jan-2006 03:04 PM"

// ErrMalformedTimestamp is returned when a stored timestamp does not
// parse with TimeLayout.  Callers must treat this as data corruption
// and surface it, never as a zero-length stay.
var ErrMalformedTimestamp = errors.New("malformed stored timestamp")

// ParseTimestamp parses a stored timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// FormatTimestamp renders a time in the stored layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatDisplay renders a time in the human-facing layout.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Hours returns end minus start in hours, rounded to two decimals.
func Hours(start, end time.Time) float64 {
	return Round2(end.Sub(start).Seconds() / 3600)
}

// Breakdown decomposes a duration into whole units for display
// alongside the fractional hour figure used for billing.
type Breakdown struct {
	Hours        float64 `json:"hours"`
	Display      string  `json:"display"`
	TotalSeconds int64   `json:"total_seconds"`
}

// Detailed returns the duration between start and end split into whole
// hours, minutes and seconds.  The display string omits a unit only
// when it and every coarser unit are zero; seconds are always shown
// when the string would otherwise be empty (so a zero duration reads
// "0s", and "1h 0m 5s" keeps its minutes).
func Detailed(start, end time.Time) Breakdown {
	total := int64(end.Sub(start).Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}

	display := parts[0]
	for _, p := range parts[1:] {
		display += " " + p
	}
	return Breakdown{
		Hours:        Round2(float64(total) / 3600),
		Display:      display,
		TotalSeconds: total,
	}
}

// HourlyCost prices a stay at the given hourly rate.  Stays shorter
// than one hour are charged the full rate as a minimum charge.
func HourlyCost(hours, rate float64) float64 {
	if hours < 1 {
		return rate
	}
	return Round2(hours * rate)
}

// ActualCost computes the final charge for a booking that ran for the
// given duration under a package with packageCost covering
// referenceHours.  Within the reference duration the package price
// stands.  Overstaying re-rates the whole stay at the hourly rate,
// but never below the package price the user committed to.
func ActualCost(packageCost, referenceHours, durationHours float64) float64 {
	if durationHours > referenceHours {
		return Round2(math.Max(packageCost, HourlyCost(durationHours, HourlyRate)))
	}
	return Round2(packageCost)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
