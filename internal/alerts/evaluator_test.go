package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/foxy-spend/internal/model"
)

var (
	morning   = model.TimeSlot{StartMinute: 7 * 60, EndMinute: 12 * 60}
	afternoon = model.TimeSlot{StartMinute: 12 * 60, EndMinute: 17 * 60}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
}

func spend(cents int64, when time.Time) model.Expense {
	return model.Expense{AmountCents: cents, Timestamp: when, Category: model.CategoryOther}
}

func TestEvaluateBudget(t *testing.T) {
	now := at(15, 10, 0)
	fresh := model.AlertState{}

	tests := []struct {
		name   string
		state  model.AlertState
		total  int64
		limit  int64
		want70 bool
		want90 bool
	}{
		{name: "below thresholds", state: fresh, total: 6999, limit: 10000},
		{name: "exactly 70", state: fresh, total: 7000, limit: 10000, want70: true},
		{name: "jump past 90", state: fresh, total: 9500, limit: 10000, want70: true, want90: true},
		{name: "70 already sent", state: model.AlertState{Year: 2026, Month: time.October, Sent70: true}, total: 8000, limit: 10000},
		{name: "only 90 pending", state: model.AlertState{Year: 2026, Month: time.October, Sent70: true}, total: 9000, limit: 10000, want90: true},
		{name: "sent last month", state: model.AlertState{Year: 2026, Month: time.September, Sent70: true, Sent90: true}, total: 9000, limit: 10000, want70: true, want90: true},
		{name: "no limit", state: fresh, total: 1_000_000, limit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBudget(tt.total, tt.limit, tt.state, now)
			assert.Equal(t, tt.want70, got.ShouldSend70)
			assert.Equal(t, tt.want90, got.ShouldSend90)
		})
	}
}

func TestEvaluateBudget_OncePerMonth(t *testing.T) {
	now := at(15, 10, 0)
	state := model.AlertState{}

	first := Evaluate(Input{Now: now, State: state, LimitCents: 10000, History: []model.Expense{spend(7000, at(14, 9, 0))}})
	require.True(t, first.ShouldSend70)
	assert.InDelta(t, 70.0, first.CurrentPercent, 1e-9)

	state = MarkSent(state, first, now)

	second := Evaluate(Input{Now: now.Add(time.Minute), State: state, LimitCents: 10000, History: []model.Expense{spend(7000, at(14, 9, 0))}})
	assert.False(t, second.ShouldSend70)

	later := []model.Expense{spend(7000, at(14, 9, 0)), spend(500, at(20, 9, 0))}
	third := Evaluate(Input{Now: at(28, 10, 0), State: state, LimitCents: 10000, History: later})
	assert.False(t, third.ShouldSend70)
	assert.InDelta(t, 75.0, third.CurrentPercent, 1e-9)

	// Usage dipping below the threshold and back does not re-arm the alert.
	dipped := Evaluate(Input{Now: at(29, 10, 0), State: state, LimitCents: 20000, History: later})
	assert.False(t, dipped.ShouldSend70)
	state = MarkSent(state, dipped, at(29, 10, 0))
	back := Evaluate(Input{Now: at(30, 10, 0), State: state, LimitCents: 10000, History: later})
	assert.False(t, back.ShouldSend70)

	nextMonth := time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)
	november := Evaluate(Input{Now: nextMonth, State: state, LimitCents: 10000, History: []model.Expense{spend(8000, nextMonth.Add(-time.Hour))}})
	assert.True(t, november.ShouldSend70)
}

func TestEvaluateReminder(t *testing.T) {
	now := at(15, 10, 30)

	tests := []struct {
		name    string
		slot    model.TimeSlot
		state   model.AlertState
		history []model.Expense
		want    bool
	}{
		{name: "due", slot: morning, want: true},
		{name: "outside slot", slot: afternoon},
		{name: "logged in slot", slot: morning, history: []model.Expense{spend(300, at(15, 8, 15))}},
		{name: "logged before slot", slot: morning, history: []model.Expense{spend(300, at(15, 6, 45))}, want: true},
		{name: "logged yesterday", slot: morning, history: []model.Expense{spend(300, at(14, 9, 0))}, want: true},
		{
			name:  "already reminded today",
			slot:  morning,
			state: model.AlertState{ReminderSent: map[string]time.Time{morning.String(): at(15, 7, 15)}},
		},
		{
			name:  "reminded yesterday",
			slot:  morning,
			state: model.AlertState{ReminderSent: map[string]time.Time{morning.String(): at(14, 7, 15)}},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateReminder(tt.slot, tt.history, tt.state, now))
		})
	}
}

func TestEvaluateReminder_UsesNowLocation(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	now := time.Date(2026, 10, 15, 9, 0, 0, 0, madrid)
	// 06:30 UTC is 08:30 in Madrid, inside the morning slot.
	history := []model.Expense{spend(300, time.Date(2026, 10, 15, 6, 30, 0, 0, time.UTC))}

	assert.False(t, EvaluateReminder(morning, history, model.AlertState{}, now))
}

func TestEvaluate_ReminderIsRecorded(t *testing.T) {
	now := at(15, 12, 5)
	in := Input{Now: now, Slots: model.DefaultTimeSlots()}

	first := Evaluate(in)
	require.True(t, first.ShouldSendReminder)
	assert.Equal(t, afternoon, first.ReminderSlot)
	assert.False(t, first.ShouldSend70)

	in.State = MarkSent(in.State, first, now)
	in.Now = now.Add(15 * time.Minute)
	assert.False(t, Evaluate(in).ShouldSendReminder)

	in.Now = at(16, 12, 5)
	assert.True(t, Evaluate(in).ShouldSendReminder)
}

func TestMonthTotal(t *testing.T) {
	history := []model.Expense{
		spend(100, at(1, 0, 0)),
		spend(200, at(31, 23, 59)),
		spend(400, time.Date(2026, 9, 30, 23, 59, 0, 0, time.UTC)),
		spend(800, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)),
	}
	assert.Equal(t, int64(300), MonthTotal(history, at(15, 10, 0)))
}
