// Package calendar provides date helpers shared by the statistics engines:
// calendar-date parsing, Monday-anchored weeks and the logical week-of-month
// numbering used for monthly grids and trend buckets.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates ("YYYY-MM-DD")
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD in t's own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDate reports whether s is a valid YYYY-MM-DD calendar date
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// StartOfDay truncates t to midnight in its own location.
// time.Truncate is not used because it works on absolute time, not wall clock.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfWeek returns midnight of the Monday that starts t's week
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -MondayIndex(day.Weekday()))
}

// MondayIndex maps a weekday to a Monday-first index (Monday=0 ... Sunday=6)
func MondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// DaysBetween returns the number of calendar days from a to b (negative if b is before a).
// Only the year/month/day of each value is used, so DST shifts never skew the result.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

var weekdayLabels = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayLabel returns the English name for a Monday-first index
func WeekdayLabel(mondayIndex int) string {
	if mondayIndex < 0 || mondayIndex > 6 {
		return ""
	}
	return weekdayLabels[mondayIndex]
}

// effectiveFirstMonday returns the first Monday that falls inside t's month.
// Days of the month before it are folded into week 1.
func effectiveFirstMonday(t time.Time) time.Time {
	monthStart := StartOfMonth(t)
	firstMonday := StartOfWeek(monthStart)
	if firstMonday.Month() != monthStart.Month() {
		return firstMonday.AddDate(0, 0, 7)
	}
	return firstMonday
}

// LogicalWeekOfMonth returns the 1-based logical week of the month for t.
//
// Weeks start on Monday. Every day from the 1st up to and including the
// week that starts on the first Monday inside the month is week 1, so a
// month starting on a Sunday has an 8-day first week.
//
// Example, February 2026 (the 1st is a Sunday):
//   - Feb 1 (Sun) -> 1
//   - Feb 2 (Mon) -> 1
//   - Feb 8 (Sun) -> 1
//   - Feb 9 (Mon) -> 2
func LogicalWeekOfMonth(t time.Time) int {
	day := StartOfDay(t)
	first := effectiveFirstMonday(day)
	if day.Before(first) {
		return 1
	}
	return DaysBetween(first, StartOfWeek(day))/7 + 1
}

// LogicalWeeksInMonth returns the number of logical weeks in t's month
func LogicalWeeksInMonth(t time.Time) int {
	return LogicalWeekOfMonth(EndOfMonth(t))
}

// WeekRange is the span of days belonging to one logical week
type WeekRange struct {
	Week  int    `json:"week"`
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// MonthLayout returns the logical weeks of t's month with their first and last day
func MonthLayout(t time.Time) []WeekRange {
	start := StartOfMonth(t)
	end := EndOfMonth(t)

	weeks := make([]WeekRange, 0, 6)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		week := LogicalWeekOfMonth(day)
		if len(weeks) == 0 || weeks[len(weeks)-1].Week != week {
			weeks = append(weeks, WeekRange{Week: week, Start: FormatDate(day)})
		}
		weeks[len(weeks)-1].End = FormatDate(day)
		weeks[len(weeks)-1].Days++
	}
	return weeks
}
