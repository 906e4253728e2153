package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/model"
)

func fixedPick(i int) Picker {
	return func(int) int { return i }
}

func TestCatalog_Variants(t *testing.T) {
	first := NewCatalog(fixedPick(0))
	assert.Equal(t, "¿Todo controlado por ahí? 🦊", first.Reminder().Title)
	assert.Equal(t, "¡Vas por el 70% del presupuesto! 📊", first.Budget70().Title)
	assert.Equal(t, "⚠️ 90% del presupuesto alcanzado", first.Budget90().Title)

	last := NewCatalog(fixedPick(4))
	assert.Equal(t, "Recuerda apuntar tus gastos del día", last.Reminder().Body)

	outOfRange := NewCatalog(fixedPick(99))
	assert.Equal(t, budget90Messages[0], outOfRange.Budget90())
}

func TestCatalog_RandomPickStaysInRange(t *testing.T) {
	c := NewCatalog(nil)
	for i := 0; i < 50; i++ {
		assert.Contains(t, reminderMessages, c.Reminder())
	}
}

func TestCatalog_Summary(t *testing.T) {
	summary := budget.Summary{
		Period:     budget.PeriodWeekly,
		TotalCents: 8450,
		TopCategories: []budget.CategoryTotal{
			{Category: model.CategoryGroceries, AmountCents: 4500},
			{Category: model.CategoryTransport, AmountCents: 2000},
			{Category: model.CategoryCoffee, AmountCents: 700},
		},
		End: time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
	}

	good := NewCatalog(fixedPick(0)).Summary(summary, true)
	assert.Equal(t, "¡Semana impecable! 🎉", good.Title)
	assert.Equal(t,
		"Gastos controlados. Sigue así\n\nTotal: 84,50 €\nTop 3: 1. Supermercado: 45,00 €, 2. Transporte: 20,00 €, 3. Café: 7,00 €",
		good.Body)

	warning := NewCatalog(fixedPick(1)).Summary(summary, false)
	assert.Equal(t, "Ojo con los gastos 👀", warning.Title)
}

func TestSaveFeedback(t *testing.T) {
	assert.Equal(t, "¡Listo! Café 3,50 € guardado.", SaveFeedback(budget.LevelOK, model.CategoryCoffee, 350))
	assert.Equal(t, "Anotado Ocio: 20,00 €. Vas alto este mes.", SaveFeedback(budget.LevelWarning, model.CategoryLeisure, 2000))
	assert.Equal(t, "He registrado 12,00 € en Salud. ¡Casi alcanzas el límite!", SaveFeedback(budget.LevelAlert, model.CategoryHealth, 1200))
}

func TestReminderTag(t *testing.T) {
	assert.Equal(t, "reminder-07:00-12:00", ReminderTag(model.DefaultTimeSlots()[0]))
}
