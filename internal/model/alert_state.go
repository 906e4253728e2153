package model

import "time"

// AlertState tracks which notifications were already sent for a user.
// Budget flags are scoped to one calendar month.
type AlertState struct {
	ReminderSent map[string]time.Time // keyed by TimeSlot.String()
	Year         int
	Month        time.Month
	Sent70       bool
	Sent90       bool
}

// ForMonth returns the state to use at now: a copy when now is in the same
// calendar month, otherwise a fresh state for now's month.
func (s AlertState) ForMonth(now time.Time) AlertState {
	if s.Year == now.Year() && s.Month == now.Month() {
		return s.Clone()
	}
	return AlertState{
		Year:         now.Year(),
		Month:        now.Month(),
		ReminderSent: make(map[string]time.Time),
	}
}

// Clone returns a deep copy of the state.
func (s AlertState) Clone() AlertState {
	out := s
	out.ReminderSent = make(map[string]time.Time, len(s.ReminderSent))
	for k, v := range s.ReminderSent {
		out.ReminderSent[k] = v
	}
	return out
}

// ReminderSentOn reports whether a reminder for slot went out on day's calendar date.
func (s AlertState) ReminderSentOn(slot TimeSlot, day time.Time) bool {
	sent, ok := s.ReminderSent[slot.String()]
	if !ok {
		return false
	}
	return SameDay(sent.In(day.Location()), day)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
