package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := ParseTimestamp(s)
	require.NoError(t, err)
	return parsed
}

func TestLookupKnownKeys(t *testing.T) {
	half := Lookup("half_day")
	assert.Equal(t, "Half Day (6 hours)", half.Name)
	assert.Equal(t, 250.0, half.Rate)
	assert.Equal(t, 6.0, half.Hours)

	monthly := Lookup("monthly")
	assert.Equal(t, 8000.0, monthly.Rate)
	assert.Equal(t, 720.0, monthly.Hours)
}

func TestLookupUnknownKeyDefaultsToHourly(t *testing.T) {
	for _, key := range []string{"", "gold", "HOURLY"} {
		got := Lookup(key)
		assert.Equal(t, "hourly", got.Key, "key %q", key)
		assert.Equal(t, 50.0, got.Rate)
	}
}

func TestTariffsOrdered(t *testing.T) {
	all := Tariffs()
	require.Len(t, all, 5)
	assert.Equal(t, "hourly", all[0].Key)
	assert.Equal(t, "monthly", all[4].Key)
}

func TestParseTimestampMalformed(t *testing.T) {
	_, err := ParseTimestamp("not a time")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedTimestamp)

	_, err = ParseTimestamp("2025-01-02") // date only, wrong layout
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
}

func TestHoursRounding(t *testing.T) {
	start := ts(t, "2025-03-10 08:00:00")

	assert.Equal(t, 0.5, Hours(start, ts(t, "2025-03-10 08:30:00")))
	assert.Equal(t, 3.0, Hours(start, ts(t, "2025-03-10 11:00:00")))
	// 100 seconds = 0.02777... hours -> 0.03
	assert.Equal(t, 0.03, Hours(start, ts(t, "2025-03-10 08:01:40")))
}

func TestDetailedDisplay(t *testing.T) {
	start := ts(t, "2025-03-10 08:00:00")

	cases := []struct {
		end     string
		display string
		seconds int64
	}{
		{"2025-03-10 08:00:00", "0s", 0},
		{"2025-03-10 08:00:42", "42s", 42},
		{"2025-03-10 08:05:00", "5m", 300},
		{"2025-03-10 08:05:07", "5m 7s", 307},
		{"2025-03-10 09:00:05", "1h 0m 5s", 3605},
		{"2025-03-10 10:30:00", "2h 30m", 9000},
		{"2025-03-11 09:01:01", "25h 1m 1s", 90061},
	}
	for _, tc := range cases {
		got := Detailed(start, ts(t, tc.end))
		assert.Equal(t, tc.display, got.Display, "end %s", tc.end)
		assert.Equal(t, tc.seconds, got.TotalSeconds, "end %s", tc.end)
	}
}

func TestDetailedTotalSecondsMatchesHours(t *testing.T) {
	start := ts(t, "2025-03-10 08:00:00")
	ends := []string{
		"2025-03-10 08:30:00",
		"2025-03-10 11:17:23",
		"2025-03-14 02:59:59",
	}
	for _, end := range ends {
		got := Detailed(start, ts(t, end))
		// the rounded hour figure re-expanded to seconds stays within
		// rounding distance of the exact total
		assert.InDelta(t, float64(got.TotalSeconds), got.Hours*3600, 18.0, "end %s", end)
		assert.Equal(t, Hours(start, ts(t, end)), got.Hours, "end %s", end)
	}
}

func TestHourlyCostMinimumCharge(t *testing.T) {
	assert.Equal(t, 50.0, HourlyCost(0.0, 50))
	assert.Equal(t, 50.0, HourlyCost(0.5, 50))
	assert.Equal(t, 50.0, HourlyCost(0.99, 50))
	assert.Equal(t, 50.0, HourlyCost(1.0, 50))
	assert.Equal(t, 150.0, HourlyCost(3.0, 50))
	assert.Equal(t, 127.5, HourlyCost(2.55, 50))
}

func TestActualCostWithinReference(t *testing.T) {
	// 0.5h on an hourly package: minimum charge equals the package
	// price, duration within reference, package price stands
	assert.Equal(t, 50.0, ActualCost(50, 1, 0.5))
	// exactly the reference duration still honors the package price
	assert.Equal(t, 250.0, ActualCost(250, 6, 6.0))
	// short stay on a big package is not discounted
	assert.Equal(t, 400.0, ActualCost(400, 24, 2.0))
}

func TestActualCostOverstayReRates(t *testing.T) {
	// 3h on an hourly package re-rates to 3*50
	assert.Equal(t, 150.0, ActualCost(50, 1, 3.0))
	// 8h on a half-day package: hourly 400 > package 250
	assert.Equal(t, 400.0, ActualCost(250, 6, 8.0))
	// even a mild overstay re-rates the whole stay
	assert.Equal(t, 325.0, ActualCost(250, 6, 6.5))
	assert.Equal(t, 8450.0, ActualCost(2500, 168, 169.0))
	// but the charge never drops below the committed package price
	assert.Equal(t, 500.0, ActualCost(500, 6, 6.5))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
}
