package billing

import "time"

// Frequency represents a subscription billing frequency.
type Frequency string

const (
	FrequencyMonthly   Frequency = "Monthly"
	FrequencyYearly    Frequency = "Yearly"
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyWeekly    Frequency = "Weekly"
	FrequencyDaily     Frequency = "Daily"
)

// IsValid reports whether the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyYearly, FrequencyQuarterly, FrequencyWeekly, FrequencyDaily:
		return true
	}
	return false
}

func (f Frequency) String() string {
	return string(f)
}

// NextCycleDate advances last by n billing periods of the given frequency.
// Weekly and Daily always advance by a single period regardless of n.
// Unknown frequencies return ok=false with a zero time; callers must treat
// that as an error.
func NextCycleDate(last time.Time, frequency Frequency, n int) (time.Time, bool) {
	switch frequency {
	case FrequencyMonthly:
		return last.AddDate(0, n, 0), true
	case FrequencyYearly:
		return last.AddDate(n, 0, 0), true
	case FrequencyQuarterly:
		return last.AddDate(0, 3*n, 0), true
	case FrequencyWeekly:
		return last.AddDate(0, 0, 7), true
	case FrequencyDaily:
		return last.AddDate(0, 0, 1), true
	default:
		return time.Time{}, false
	}
}
