package stats

import (
	"time"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// UpdateStreak records an activity on the calendar day of today (in today's
// location) and updates the streak:
//   - same day as the last activity: unchanged
//   - the day after the last activity: +1
//   - any other gap, or no prior activity: reset to 1
//
// It mutates profile and returns the new streak. The caller must own
// profile exclusively for the duration of the call.
func UpdateStreak(profile *entities.Profile, today time.Time) int {
	day := today.Format(entities.DateLayout)
	last := profile.Stats.LastActivityDate

	switch last {
	case day:
		return profile.Stats.CurrentStreak
	case previousDay(today):
		profile.Stats.CurrentStreak = max(profile.Stats.CurrentStreak, 0) + 1
	default:
		profile.Stats.CurrentStreak = 1
	}

	profile.Stats.LastActivityDate = day
	return profile.Stats.CurrentStreak
}

// previousDay uses calendar arithmetic so DST transitions never skip or
// repeat a day.
func previousDay(t time.Time) string {
	y, m, d := t.Date()
	return time.Date(y, m, d-1, 12, 0, 0, 0, time.UTC).Format(entities.DateLayout)
}
