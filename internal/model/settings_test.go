package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeSlot
		wantErr bool
	}{
		{in: "07:00-12:00", want: TimeSlot{StartMinute: 420, EndMinute: 720}},
		{in: "17:30-21:00", want: TimeSlot{StartMinute: 1050, EndMinute: 1260}},
		{in: "7-12", want: TimeSlot{StartMinute: 420, EndMinute: 720}},
		{in: "12:00-07:00", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "25:00-26:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeSlot(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeSlot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeSlot_Contains(t *testing.T) {
	slot := TimeSlot{StartMinute: 7 * 60, EndMinute: 12 * 60}
	day := func(h, m int) time.Time { return time.Date(2026, 10, 14, h, m, 0, 0, time.UTC) }

	assert.True(t, slot.Contains(day(7, 0)))
	assert.True(t, slot.Contains(day(11, 59)))
	assert.False(t, slot.Contains(day(12, 0)))
	assert.False(t, slot.Contains(day(6, 59)))
	assert.Equal(t, day(7, 0), slot.StartOn(day(10, 15)))
	assert.Equal(t, "07:00-12:00", slot.String())
}

func TestSettings(t *testing.T) {
	s := DefaultSettings("u1")
	assert.Len(t, s.ReminderSlots, 3)
	assert.Equal(t, "Europe/Madrid", s.Location().String())

	s.Timezone = "Mars/Olympus"
	assert.Equal(t, time.UTC, s.Location())

	assert.True(t, IsValidMonthlyLimit(0))
	assert.True(t, IsValidMonthlyLimit(MaxMonthlyLimitCents))
	assert.False(t, IsValidMonthlyLimit(-1))
	assert.False(t, IsValidMonthlyLimit(MaxMonthlyLimitCents+1))
}

func TestAlertState_ForMonth(t *testing.T) {
	oct := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	slot := DefaultTimeSlots()[0]

	state := AlertState{
		Year:         2026,
		Month:        time.October,
		Sent70:       true,
		ReminderSent: map[string]time.Time{slot.String(): oct},
	}

	same := state.ForMonth(oct.AddDate(0, 0, 5))
	assert.True(t, same.Sent70)
	same.ReminderSent["x"] = oct
	assert.NotContains(t, state.ReminderSent, "x", "ForMonth must not share the map")

	next := state.ForMonth(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, next.Sent70)
	assert.False(t, next.Sent90)
	assert.Equal(t, time.November, next.Month)
	assert.Empty(t, next.ReminderSent)

	assert.True(t, state.ReminderSentOn(slot, oct.Add(time.Hour)))
	assert.False(t, state.ReminderSentOn(slot, oct.AddDate(0, 0, 1)))
}
