package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLogicalWeekOfMonth(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		// February 2026 starts on a Sunday
		{name: "sunday start day 1", date: date(2026, time.February, 1), want: 1},
		{name: "sunday start first monday", date: date(2026, time.February, 2), want: 1},
		{name: "sunday start following sunday", date: date(2026, time.February, 8), want: 1},
		{name: "sunday start second monday", date: date(2026, time.February, 9), want: 2},
		{name: "sunday start last day", date: date(2026, time.February, 28), want: 4},

		// June 2026 starts on a Monday
		{name: "monday start day 1", date: date(2026, time.June, 1), want: 1},
		{name: "monday start day 7", date: date(2026, time.June, 7), want: 1},
		{name: "monday start day 8", date: date(2026, time.June, 8), want: 2},
		{name: "monday start last monday", date: date(2026, time.June, 29), want: 5},

		// April 2026 starts on a Wednesday
		{name: "midweek start day 1", date: date(2026, time.April, 1), want: 1},
		{name: "midweek start first monday", date: date(2026, time.April, 6), want: 1},
		{name: "midweek start second monday", date: date(2026, time.April, 13), want: 2},
		{name: "midweek start last day", date: date(2026, time.April, 30), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LogicalWeekOfMonth(tt.date); got != tt.want {
				t.Errorf("LogicalWeekOfMonth(%s) = %d, want %d", FormatDate(tt.date), got, tt.want)
			}
		})
	}
}

func TestLogicalWeekOfMonthIgnoresTimeOfDay(t *testing.T) {
	evening := time.Date(2026, time.February, 8, 23, 59, 0, 0, time.UTC)
	if got := LogicalWeekOfMonth(evening); got != 1 {
		t.Errorf("LogicalWeekOfMonth(late Feb 8) = %d, want 1", got)
	}
}

func TestLogicalWeekOfMonthAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// DST starts on 2026-03-08; March 2026 starts on a Sunday.
	tests := map[int]int{1: 1, 2: 1, 8: 1, 9: 2, 16: 3, 30: 5}
	for day, want := range tests {
		d := time.Date(2026, time.March, day, 12, 0, 0, 0, loc)
		if got := LogicalWeekOfMonth(d); got != want {
			t.Errorf("LogicalWeekOfMonth(2026-03-%02d) = %d, want %d", day, got, want)
		}
	}
}

func TestLogicalWeeksInMonth(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{date(2026, time.February, 15), 4},
		{date(2026, time.June, 1), 5},
		{date(2026, time.April, 20), 4},
		{date(2026, time.March, 1), 5},
	}
	for _, tt := range tests {
		if got := LogicalWeeksInMonth(tt.date); got != tt.want {
			t.Errorf("LogicalWeeksInMonth(%s) = %d, want %d", FormatDate(tt.date), got, tt.want)
		}
	}
}

func TestMonthLayout(t *testing.T) {
	weeks := MonthLayout(date(2026, time.February, 10))
	if len(weeks) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(weeks))
	}

	first := weeks[0]
	if first.Start != "2026-02-01" || first.End != "2026-02-08" || first.Days != 8 {
		t.Errorf("unexpected first week: %+v", first)
	}
	last := weeks[3]
	if last.Start != "2026-02-23" || last.End != "2026-02-28" || last.Days != 6 {
		t.Errorf("unexpected last week: %+v", last)
	}

	total := 0
	for i, w := range weeks {
		if w.Week != i+1 {
			t.Errorf("week %d numbered %d", i+1, w.Week)
		}
		total += w.Days
	}
	if total != 28 {
		t.Errorf("layout covers %d days, want 28", total)
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2026-02-01 is a Sunday; its Monday-start week begins on 2026-01-26
	if got := FormatDate(StartOfWeek(date(2026, time.February, 1))); got != "2026-01-26" {
		t.Errorf("StartOfWeek(Sunday) = %s, want 2026-01-26", got)
	}
	if got := FormatDate(StartOfWeek(date(2026, time.February, 2))); got != "2026-02-02" {
		t.Errorf("StartOfWeek(Monday) = %s, want 2026-02-02", got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(date(2026, time.February, 27), date(2026, time.March, 2)); got != 3 {
		t.Errorf("DaysBetween across month = %d, want 3", got)
	}
	if got := DaysBetween(date(2026, time.March, 2), date(2026, time.February, 27)); got != -3 {
		t.Errorf("DaysBetween reversed = %d, want -3", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-02-30"); err == nil {
		t.Error("expected error for impossible date")
	}
	if _, err := ParseDate("02/01/2026"); err == nil {
		t.Error("expected error for wrong layout")
	}
	d, err := ParseDate("2026-02-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Weekday() != time.Sunday {
		t.Errorf("2026-02-01 weekday = %s, want Sunday", d.Weekday())
	}
	if !IsDate("2026-12-31") || IsDate("") {
		t.Error("IsDate returned unexpected result")
	}
}

func TestWeekdayLabel(t *testing.T) {
	if WeekdayLabel(MondayIndex(time.Sunday)) != "Sunday" {
		t.Error("Sunday should map to index 6")
	}
	if WeekdayLabel(MondayIndex(time.Monday)) != "Monday" {
		t.Error("Monday should map to index 0")
	}
	if WeekdayLabel(7) != "" {
		t.Error("out of range index should return empty label")
	}
}
