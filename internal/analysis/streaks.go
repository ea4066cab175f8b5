package analysis

import (
	"sort"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

// BrokenStreakWindow is the trailing window, in days, scanned for broken streaks
const BrokenStreakWindow = 30

// habitHistory is one habit's log, keyed by date, with the dates in ascending order.
//
// Streak rules: a streak is a run of the same status on consecutive calendar
// days. A missing day ends every streak, and so does a skipped day, since
// skipped is neither a completion nor a miss.
type habitHistory struct {
	byDate map[string]models.LogStatus
	dates  []time.Time
}

func newHabitHistory(habitID string, logs models.LogsMap) habitHistory {
	h := habitHistory{byDate: make(map[string]models.LogStatus)}
	for date, statuses := range logs {
		status, ok := statuses[habitID]
		if !ok || !status.Valid() {
			continue
		}
		d, err := calendar.ParseDate(date)
		if err != nil {
			continue
		}
		h.byDate[date] = status
		h.dates = append(h.dates, d)
	}
	sort.Slice(h.dates, func(i, j int) bool { return h.dates[i].Before(h.dates[j]) })
	return h
}

func (h habitHistory) status(d time.Time) (models.LogStatus, bool) {
	s, ok := h.byDate[calendar.FormatDate(d)]
	return s, ok
}

// longestRun returns the longest run of want on consecutive days
func (h habitHistory) longestRun(want models.LogStatus) int {
	longest, current := 0, 0
	var prev time.Time
	for i, d := range h.dates {
		if h.byDate[calendar.FormatDate(d)] != want {
			current = 0
			continue
		}
		if current > 0 && i > 0 && calendar.DaysBetween(prev, d) == 1 {
			current++
		} else {
			current = 1
		}
		prev = d
		if current > longest {
			longest = current
		}
	}
	return longest
}

// currentStreak counts the run of done days ending today, or ending yesterday
// when today has not been logged yet.
func (h habitHistory) currentStreak(today time.Time) int {
	day := today
	status, ok := h.status(day)
	if !ok {
		day = day.AddDate(0, 0, -1)
		status, ok = h.status(day)
	}
	if !ok || status != models.LogStatusDone {
		return 0
	}

	streak := 0
	for ok && status == models.LogStatusDone {
		streak++
		day = day.AddDate(0, 0, -1)
		status, ok = h.status(day)
	}
	return streak
}

// brokenStreaks counts how often a done day was followed by a day that was
// not done during the trailing window ending today. An unlogged today does
// not count as a break.
func (h habitHistory) brokenStreaks(today time.Time, window int) int {
	broken := 0
	start := today.AddDate(0, 0, -(window - 1))
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		prev, ok := h.status(d.AddDate(0, 0, -1))
		if !ok || prev != models.LogStatusDone {
			continue
		}
		cur, logged := h.status(d)
		if logged && cur == models.LogStatusDone {
			continue
		}
		if !logged && d.Equal(today) {
			continue
		}
		broken++
	}
	return broken
}
