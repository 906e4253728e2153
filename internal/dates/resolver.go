// Package dates turns Spanish relative date phrases into calendar dates.
//
// Every function takes the reference time explicitly; nothing here reads the clock.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/foxy-spend/internal/common"
)

var (
	daysAgoPattern  = regexp.MustCompile(`^hace\s+(\d+|un|una|uno)\s+dias?$`)
	weeksAgoPattern = regexp.MustCompile(`^hace\s+(\d+|un|una|uno)\s+semanas?$`)
	weekdayPattern  = regexp.MustCompile(`^(?:el\s+)?(lunes|martes|miercoles|jueves|viernes|sabado|domingo)(?:\s+pasado)?$`)

	// expressionPattern finds a date phrase inside a longer utterance.
	expressionPattern = regexp.MustCompile(`\b(anteayer|ayer|hoy|hace\s+(?:\d+|un|una|uno)\s+(?:dias?|semanas?)|(?:el\s+)?(?:lunes|martes|miercoles|jueves|viernes|sabado|domingo)(?:\s+pasado)?)\b`)
)

// maxDaysBack bounds "hace N días/semanas" to about ten years.
const maxDaysBack = 3660

var weekdays = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
}

var absoluteLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
}

// Resolve converts phrase into a date relative to now. The second return value is
// false when the phrase is not understood; no other failure signal exists.
//
// Relative phrases keep now's time of day and location.
func Resolve(phrase string, now time.Time) (time.Time, bool) {
	p := common.Fold(common.CollapseSpaces(phrase))
	if p == "" {
		return time.Time{}, false
	}

	switch p {
	case "hoy":
		return now, true
	case "ayer":
		return now.AddDate(0, 0, -1), true
	case "anteayer", "antes de ayer":
		return now.AddDate(0, 0, -2), true
	}

	if m := daysAgoPattern.FindStringSubmatch(p); m != nil {
		if n, ok := count(m[1]); ok && n <= maxDaysBack {
			return now.AddDate(0, 0, -n), true
		}
	}

	if m := weeksAgoPattern.FindStringSubmatch(p); m != nil {
		if n, ok := count(m[1]); ok && n <= maxDaysBack/7 {
			return now.AddDate(0, 0, -7*n), true
		}
	}

	// A weekday name always means the last seven days, so "pasado" does not push
	// the date a further week back.
	if m := weekdayPattern.FindStringSubmatch(p); m != nil {
		return now.AddDate(0, 0, -daysBack(now.Weekday(), weekdays[m[1]])), true
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(phrase), now.Location()); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// daysBack returns how many days ago the most recent target weekday was,
// strictly before today: always between 1 and 7.
func daysBack(current, target time.Weekday) int {
	back := int(current) - int(target)
	if back <= 0 {
		back += 7
	}
	return back
}

func count(s string) (int, bool) {
	switch s {
	case "un", "una", "uno":
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ExtractExpression returns the first date phrase found in text, folded to
// lowercase without accents, or "" when there is none.
func ExtractExpression(text string) string {
	return expressionPattern.FindString(common.Fold(text))
}
