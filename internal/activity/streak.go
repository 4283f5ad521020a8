package activity

// StreakState is a user's persisted streak fields: the count of consecutive
// civil days with at least one completion, and the civil date of the most
// recent completion (nil before the first one).
type StreakState struct {
	Count int
	Last  *Date
}

// Complete applies a completion on the given civil day and returns the next
// state plus whether anything changed. Completing any number of goals on the
// same civil day credits the streak at most once.
func Complete(state StreakState, today Date) (StreakState, bool) {
	if state.Last != nil && *state.Last == today {
		return state, false // already credited today
	}

	next := StreakState{Last: &today}
	yesterday := today.AddDays(-1)
	if state.Last != nil && *state.Last == yesterday {
		next.Count = state.Count + 1 // continuation
	} else {
		next.Count = 1 // fresh start after a gap
	}
	return next, true
}

// Observe returns the streak to display as of today, and whether the stored
// count is stale and should be reset to zero. The streak survives as long as
// the last completion was today or yesterday; otherwise it has lapsed.
// Decay is lazy: nothing sweeps streaks in the background, a lapsed streak is
// healed on the next read.
func Observe(state StreakState, today Date) (displayed int, stale bool) {
	if state.Last == nil {
		return 0, state.Count != 0
	}
	yesterday := today.AddDays(-1)
	if *state.Last == today || *state.Last == yesterday {
		return state.Count, false
	}
	return 0, state.Count != 0
}
