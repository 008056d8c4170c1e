package entities

import "time"

// ReminderPayload is what a review reminder message is built from.
type ReminderPayload struct {
	Profile  *Profile
	DueCount int    // number of cards due now
	NextWord string // word of the highest-priority due card
}

// ReminderWindow limits reminders to [StartHour, EndHour) local time.
type ReminderWindow struct {
	StartHour int
	EndHour   int
}

// Contains reports whether t falls inside the window. A window whose end is
// not after its start is treated as always open.
func (w ReminderWindow) Contains(t time.Time) bool {
	if w.EndHour <= w.StartHour {
		return true
	}
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}

// AppState is the bookkeeping document stored under the app-state key.
type AppState struct {
	LastReminderAt map[string]time.Time `json:"lastReminderAt,omitempty"` // by profile ID
}

// CanRemind reports whether p may receive a reminder at now: at most
// one per calendar day in loc, and none on a day the learner was already active.
func (s *AppState) CanRemind(p *Profile, now time.Time, loc *time.Location) bool {
	today := CalendarDay(now, loc)
	if p.Stats.LastActivityDate == today {
		return false
	}

	last, ok := s.LastReminderAt[p.ID]
	if !ok {
		return true
	}
	return CalendarDay(last, loc) != today
}

// MarkReminded records a reminder sent to profileID at the given time.
func (s *AppState) MarkReminded(profileID string, at time.Time) {
	if s.LastReminderAt == nil {
		s.LastReminderAt = make(map[string]time.Time)
	}
	s.LastReminderAt[profileID] = at
}
