// Package notify turns alert decisions into user notifications and runs the
// periodic alert check.
package notify

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// Message is a notification title and body.
type Message struct {
	Title string
	Body  string
}

// Notification tags. Reminders add the slot: "reminder-07:00-12:00".
const (
	TagBudget70       = "budget-70"
	TagBudget90       = "budget-90"
	TagSummary        = "summary"
	tagReminderPrefix = "reminder-"
)

// ReminderTag returns the tag for a reminder in slot.
func ReminderTag(slot model.TimeSlot) string {
	return tagReminderPrefix + slot.String()
}

var reminderMessages = []Message{
	{Title: "¿Todo controlado por ahí? 🦊", Body: "Si has tenido algún gasto, apúntalo para no olvidarlo"},
	{Title: "Foxy por aquí 👋", Body: "¿Has comprado algo hoy? Vamos a registrarlo juntos"},
	{Title: "¡Foxy al habla! 🦊", Body: "¿Qué tal el día? Si has gastado algo, cuéntamelo"},
	{Title: "Hey, ¿todo bien? 👋", Body: "Solo paso a recordarte que puedes registrar tus gastos"},
	{Title: "¿Cómo va todo? 🦊", Body: "Recuerda apuntar tus gastos del día"},
}

var budget70Messages = []Message{
	{Title: "¡Vas por el 70% del presupuesto! 📊", Body: "Nada mal, sigamos así"},
	{Title: "Hey, 70% del presupuesto usado 💰", Body: "Vas bien, pero ojo con lo que queda de mes"},
	{Title: "70% de tu presupuesto gastado 📈", Body: "Todavía queda margen, ¡sigamos controlándolo!"},
}

var budget90Messages = []Message{
	{Title: "⚠️ 90% del presupuesto alcanzado", Body: "Queda poco margen para el resto del mes"},
	{Title: "¡Alerta! Ya llevas el 90% 📊", Body: "Intenta controlar los gastos hasta fin de mes"},
	{Title: "90% del límite mensual 💸", Body: "Cuidado con los últimos días del mes"},
}

var summaryGoodMessages = []Message{
	{Title: "¡Semana impecable! 🎉", Body: "Gastos controlados. Sigue así"},
	{Title: "¡Genial! 💪", Body: "Esta semana has mantenido tus gastos bajo control"},
}

var summaryWarningMessages = []Message{
	{Title: "Resumen semanal 📊", Body: "Has gastado más de lo planeado. Ajustemos la próxima"},
	{Title: "Ojo con los gastos 👀", Body: "Esta semana te has pasado un poco. Vamos a mejorar"},
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// Catalog picks a message variant for each kind of notification.
type Catalog struct {
	pick Picker
}

// NewCatalog creates a catalog. A nil picker chooses variants at random.
func NewCatalog(pick Picker) *Catalog {
	if pick == nil {
		pick = rand.IntN
	}
	return &Catalog{pick: pick}
}

// Reminder returns a nudge to log the day's expenses.
func (c *Catalog) Reminder() Message {
	return c.choose(reminderMessages)
}

// Budget70 returns the 70% threshold alert.
func (c *Catalog) Budget70() Message {
	return c.choose(budget70Messages)
}

// Budget90 returns the 90% threshold alert.
func (c *Catalog) Budget90() Message {
	return c.choose(budget90Messages)
}

// Summary returns the period summary. good selects the encouraging variants.
func (c *Catalog) Summary(summary budget.Summary, good bool) Message {
	variants := summaryWarningMessages
	if good {
		variants = summaryGoodMessages
	}
	base := c.choose(variants)

	ranked := make([]string, len(summary.TopCategories))
	for i, ct := range summary.TopCategories {
		ranked[i] = fmt.Sprintf("%d. %s: %s", i+1, ct.Category, model.FormatEUR(ct.AmountCents))
	}

	return Message{
		Title: base.Title,
		Body: fmt.Sprintf("%s\n\nTotal: %s\nTop %d: %s",
			base.Body, model.FormatEUR(summary.TotalCents), budget.TopCategoryCount, strings.Join(ranked, ", ")),
	}
}

func (c *Catalog) choose(variants []Message) Message {
	i := c.pick(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return variants[i]
}

// SaveFeedback is the confirmation shown after an expense is saved, worded after the
// month's budget level.
func SaveFeedback(level budget.Level, category model.Category, cents int64) string {
	amount := model.FormatEUR(cents)
	switch level {
	case budget.LevelAlert:
		return fmt.Sprintf("He registrado %s en %s. ¡Casi alcanzas el límite!", amount, category)
	case budget.LevelWarning:
		return fmt.Sprintf("Anotado %s: %s. Vas alto este mes.", category, amount)
	default:
		return fmt.Sprintf("¡Listo! %s %s guardado.", category, amount)
	}
}
