package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo
)

// MaxMonthlyLimitCents caps the monthly budget at one million euros.
const MaxMonthlyLimitCents int64 = 1_000_000 * 100

// DefaultTimezone is used when settings carry no usable timezone.
const DefaultTimezone = "Europe/Madrid"

// ErrInvalidTimeSlot is returned for slot strings that are not "HH:MM-HH:MM".
var ErrInvalidTimeSlot = errors.New("invalid time slot")

// Settings holds the per-user budget and notification preferences.
type Settings struct {
	UserID            string
	Timezone          string
	ReminderSlots     []TimeSlot
	MonthlyLimitCents int64 // 0 means no budget
	BudgetAlerts      bool
	Reminders         bool
}

// DefaultSettings returns settings with alerts enabled and the default reminder slots.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:        userID,
		Timezone:      DefaultTimezone,
		ReminderSlots: DefaultTimeSlots(),
		BudgetAlerts:  true,
		Reminders:     true,
	}
}

// IsValidMonthlyLimit reports whether cents is an acceptable monthly limit.
func IsValidMonthlyLimit(cents int64) bool {
	return cents >= 0 && cents <= MaxMonthlyLimitCents
}

// Location returns the user's time zone, falling back to UTC.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TimeSlot is a daily window in minutes after midnight, end exclusive.
type TimeSlot struct {
	StartMinute int
	EndMinute   int
}

// DefaultTimeSlots returns the morning, afternoon and evening reminder windows.
func DefaultTimeSlots() []TimeSlot {
	return []TimeSlot{
		{StartMinute: 7 * 60, EndMinute: 12 * 60},
		{StartMinute: 12 * 60, EndMinute: 17 * 60},
		{StartMinute: 17 * 60, EndMinute: 21 * 60},
	}
}

// ParseTimeSlot parses "07:00-12:00".
func ParseTimeSlot(s string) (TimeSlot, error) {
	startText, endText, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}

	start, err := parseClock(startText)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}
	end, err := parseClock(endText)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}
	if end <= start {
		return TimeSlot{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidTimeSlot, s)
	}

	return TimeSlot{StartMinute: start, EndMinute: end}, nil
}

// ParseTimeSlots parses a list of slot strings.
func ParseTimeSlots(values []string) ([]TimeSlot, error) {
	slots := make([]TimeSlot, 0, len(values))
	for _, v := range values {
		slot, err := ParseTimeSlot(v)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func parseClock(s string) (int, error) {
	hourText, minuteText, found := strings.Cut(strings.TrimSpace(s), ":")
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 24 {
		return 0, ErrInvalidTimeSlot
	}
	minute := 0
	if found {
		minute, err = strconv.Atoi(minuteText)
		if err != nil || minute < 0 || minute > 59 {
			return 0, ErrInvalidTimeSlot
		}
	}
	total := hour*60 + minute
	if total > 24*60 {
		return 0, ErrInvalidTimeSlot
	}
	return total, nil
}

// Contains reports whether t's wall-clock time falls inside the slot.
func (s TimeSlot) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= s.StartMinute && m < s.EndMinute
}

// StartOn returns the slot start on t's calendar day, in t's location.
func (s TimeSlot) StartOn(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, s.StartMinute/60, s.StartMinute%60, 0, 0, t.Location())
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", s.StartMinute/60, s.StartMinute%60, s.EndMinute/60, s.EndMinute%60)
}
