package livematch

import "time"

const (
	// staleGraceSeconds is how far past the configured duration a running
	// match may drift before it counts as abandoned.
	staleGraceSeconds = 300

	// staleRunningCap is the longest a single running interval can
	// plausibly last. An anchor older than this means the operator walked
	// away without pausing.
	staleRunningCap = 30 * time.Minute
)

// ElapsedAt returns the elapsed seconds of m at the given wall-clock instant.
// A match that is not running is frozen at its stored elapsedSeconds; a
// running match adds the whole seconds since the current anchor. Nothing here
// depends on in-process state, which is what keeps the timer correct across
// reloads and device switches.
func (m *LiveMatch) ElapsedAt(now time.Time) int {
	if m.Status != StatusRunning || m.TimerStartedAt == nil {
		return m.Elapsed
	}
	return m.TimerElapsed + int(now.Sub(*m.TimerStartedAt)/time.Second)
}

// StaleAt reports whether m looks abandoned: left running far past its
// configured duration, or with a running interval longer than any plausible
// period. Advisory only, nothing finishes a stale match automatically.
func (m *LiveMatch) StaleAt(now time.Time) bool {
	if m.Status != StatusRunning || m.TimerStartedAt == nil {
		return false
	}
	if m.ElapsedAt(now) > m.DurationSeconds+staleGraceSeconds {
		return true
	}
	return now.Sub(*m.TimerStartedAt) > staleRunningCap
}

// CombinedScore returns regulation plus overtime goals, the pair that ends up
// in the canonical record when the match finishes.
func (m *LiveMatch) CombinedScore() Score {
	return Score{
		Home: m.HomeScore + m.Overtime.Home,
		Away: m.AwayScore + m.Overtime.Away,
	}
}
