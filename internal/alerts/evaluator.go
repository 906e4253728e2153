// Package alerts decides when budget-threshold alerts and logging reminders are due.
// Every decision is a pure function of the current time, the spend history and the
// previously sent state; sending and persisting are left to the caller.
package alerts

import (
	"time"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// BudgetDecision says which threshold alerts should go out now.
type BudgetDecision struct {
	CurrentPercent float64 // 0..100+, 0 without a limit
	ShouldSend70   bool
	ShouldSend90   bool
}

// EvaluateBudget compares the month's spend to the limit. Each threshold fires at
// most once per calendar month; state from an earlier month is ignored.
func EvaluateBudget(totalCents, limitCents int64, state model.AlertState, now time.Time) BudgetDecision {
	if limitCents <= 0 {
		return BudgetDecision{}
	}

	status := budget.Calculate(totalCents, limitCents)
	current := state.ForMonth(now)

	return BudgetDecision{
		CurrentPercent: status.PercentageUsed * 100,
		ShouldSend70:   status.Level != budget.LevelOK && !current.Sent70,
		ShouldSend90:   status.Level == budget.LevelAlert && !current.Sent90,
	}
}

// EvaluateReminder reports whether a reminder for slot is due at now. It is only
// due while now is inside the slot, when no reminder for the slot went out today and
// nothing was logged today since the slot started.
func EvaluateReminder(slot model.TimeSlot, history []model.Expense, state model.AlertState, now time.Time) bool {
	if !slot.Contains(now) {
		return false
	}
	if state.ReminderSentOn(slot, now) {
		return false
	}

	start := slot.StartOn(now)
	for _, e := range history {
		at := e.Timestamp.In(now.Location())
		if !at.Before(start) && model.SameDay(at, now) {
			return false
		}
	}
	return true
}

// Input is everything Evaluate looks at.
type Input struct {
	Now        time.Time // in the user's time zone
	State      model.AlertState
	History    []model.Expense // recent expenses, any order
	Slots      []model.TimeSlot
	LimitCents int64
}

// Decision is the combined outcome of one evaluation.
type Decision struct {
	ReminderSlot       model.TimeSlot
	CurrentPercent     float64
	ShouldSendReminder bool
	ShouldSend70       bool
	ShouldSend90       bool
}

// Evaluate runs the budget and reminder checks. The month total is taken from the
// history entries that fall in now's calendar month.
func Evaluate(in Input) Decision {
	monthTotal := MonthTotal(in.History, in.Now)
	budgetDecision := EvaluateBudget(monthTotal, in.LimitCents, in.State, in.Now)

	decision := Decision{
		CurrentPercent: budgetDecision.CurrentPercent,
		ShouldSend70:   budgetDecision.ShouldSend70,
		ShouldSend90:   budgetDecision.ShouldSend90,
	}

	for _, slot := range in.Slots {
		if EvaluateReminder(slot, in.History, in.State, in.Now) {
			decision.ShouldSendReminder = true
			decision.ReminderSlot = slot
			break
		}
	}

	return decision
}

// MonthTotal sums the expenses that fall in now's calendar month, in now's location.
func MonthTotal(history []model.Expense, now time.Time) int64 {
	start, end := budget.MonthRange(now)
	var total int64
	for _, e := range history {
		if e.Timestamp.Before(start) || !e.Timestamp.Before(end) {
			continue
		}
		total += e.AmountCents
	}
	return total
}

// MarkSent returns state updated with the notifications in decision, as sent at now.
func MarkSent(state model.AlertState, decision Decision, now time.Time) model.AlertState {
	next := state.ForMonth(now)
	if decision.ShouldSend70 {
		next.Sent70 = true
	}
	if decision.ShouldSend90 {
		next.Sent90 = true
	}
	if decision.ShouldSendReminder {
		next.ReminderSent[decision.ReminderSlot.String()] = now
	}
	return next
}
