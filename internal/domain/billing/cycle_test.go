package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cycleBase() time.Time {
	return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestNextCycleDate_Monthly(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want time.Time
	}{
		{"one month", 1, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"three months", 3, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"twelve months", 12, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextCycleDate(cycleBase(), FrequencyMonthly, tc.n)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextCycleDate_Yearly(t *testing.T) {
	got, ok := NextCycleDate(cycleBase(), FrequencyYearly, 2)
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestNextCycleDate_Quarterly(t *testing.T) {
	got, ok := NextCycleDate(cycleBase(), FrequencyQuarterly, 2)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestNextCycleDate_WeeklyIgnoresN(t *testing.T) {
	// Weekly always advances exactly one week regardless of n.
	for _, n := range []int{1, 4, 10} {
		got, ok := NextCycleDate(cycleBase(), FrequencyWeekly, n)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC), got)
	}
}

func TestNextCycleDate_DailyIgnoresN(t *testing.T) {
	for _, n := range []int{1, 30} {
		got, ok := NextCycleDate(cycleBase(), FrequencyDaily, n)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), got)
	}
}

func TestNextCycleDate_UnknownFrequency(t *testing.T) {
	got, ok := NextCycleDate(cycleBase(), Frequency("Biweekly"), 1)
	assert.False(t, ok)
	assert.True(t, got.IsZero())
}

func TestNextCycleDate_MonthEndOverflow(t *testing.T) {
	// Go normalizes Jan 31 + 1 month to Mar 2/3; callers rely on AddDate semantics.
	base := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	got, ok := NextCycleDate(base, FrequencyMonthly, 1)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestFrequencyIsValid(t *testing.T) {
	assert.True(t, FrequencyMonthly.IsValid())
	assert.True(t, FrequencyDaily.IsValid())
	assert.False(t, Frequency("").IsValid())
	assert.False(t, Frequency("monthly").IsValid())
}
