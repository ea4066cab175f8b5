package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

const (
	// NoData is reported as the worst day when nothing has been logged
	NoData = "N/A"

	// Changes within this many points are reported as "same"
	comparisonBand = 5

	// Habits under this completion rate are flagged
	criticalRate = 50
	// Habits whose streak broke at least this often in the window are flagged
	criticalBrokenStreaks = 2
)

// tally counts done and missed entries. Skipped entries never reach a tally.
type tally struct {
	done  int
	total int
}

func (t *tally) add(status models.LogStatus) {
	switch status {
	case models.LogStatusDone:
		t.done++
		t.total++
	case models.LogStatusMissed:
		t.total++
	}
}

func (t *tally) merge(o tally) {
	t.done += o.done
	t.total += o.total
}

func (t tally) rate() int {
	return percent(t.done, t.total)
}

// percent returns round(part/whole*100), or 0 when whole is zero
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// ComputeHabitStats aggregates habit performance over the whole log.
//
// Only habits in the active list are considered; log entries for unknown
// habits are ignored. Skipped entries break streaks and are left out of every
// rate. today anchors current streaks, trends and comparisons; only its
// calendar date is used. An unknown timeframe falls back to weekly.
func ComputeHabitStats(habits []models.Habit, logs models.LogsMap, timeframe models.Timeframe, today time.Time) models.HabitStatsBundle {
	if !timeframe.Valid() {
		timeframe = models.TimeframeWeekly
	}
	y, m, d := today.Date()
	today = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	a := newAggregator(habits, logs)

	bundle := models.HabitStatsBundle{
		Timeframe:         timeframe,
		TotalActiveDays:   a.activeDays,
		GlobalSuccessRate: a.overall.rate(),
		WorstDay:          NoData,
		HabitStats:        make([]models.HabitStat, 0, len(habits)),
		HeatmapData:       make(map[string]float64, len(a.daily)),
		CriticalHabits:    make([]models.CriticalHabit, 0),
	}

	for i, habit := range habits {
		h := a.histories[i]
		counts := a.perHabit[i]
		stat := models.HabitStat{
			ID:             habit.ID,
			Title:          habit.Title,
			Color:          habit.Color,
			CompletionRate: counts.tally.rate(),
			CurrentStreak:  h.currentStreak(today),
			LongestStreak:  h.longestRun(models.LogStatusDone),
			WorstStreak:    h.longestRun(models.LogStatusMissed),
			TotalDone:      counts.tally.done,
			TotalMissed:    counts.tally.total - counts.tally.done,
			TotalSkipped:   counts.skipped,
		}
		if stat.LongestStreak > bundle.BestStreak {
			bundle.BestStreak = stat.LongestStreak
		}
		bundle.HabitStats = append(bundle.HabitStats, stat)

		if counts.tally.total > 0 {
			bundle.CriticalHabits = append(bundle.CriticalHabits, criticalHabit(habit, stat, counts, h, today))
		}
	}
	sort.SliceStable(bundle.CriticalHabits, func(i, j int) bool {
		return bundle.CriticalHabits[i].CompletionRate < bundle.CriticalHabits[j].CompletionRate
	})

	bundle.WeekdayStats = weekdayStats(a.weekdays)
	if idx, ok := worstWeekday(a.weekdays); ok {
		bundle.WorstDay = calendar.WeekdayLabel(idx)
	}

	for date, t := range a.daily {
		if t.total > 0 {
			bundle.HeatmapData[date] = float64(t.done) / float64(t.total)
		}
	}

	bundle.TrendData = a.trend(timeframe, today)
	bundle.Comparisons = []models.PeriodComparison{
		a.compare(habits, models.TimeframeWeekly, today),
		a.compare(habits, models.TimeframeMonthly, today),
		a.compare(habits, models.TimeframeAnnual, today),
	}

	return bundle
}

type habitCounts struct {
	tally    tally
	skipped  int
	weekdays [7]tally
}

// aggregator indexes the log once so every output can be read from it
type aggregator struct {
	histories  []habitHistory
	perHabit   []habitCounts
	daily      map[string]tally
	habitDaily []map[string]tally
	weekdays   [7]tally
	overall    tally
	activeDays int
	firstYear  int
}

func newAggregator(habits []models.Habit, logs models.LogsMap) *aggregator {
	a := &aggregator{
		histories:  make([]habitHistory, len(habits)),
		perHabit:   make([]habitCounts, len(habits)),
		daily:      make(map[string]tally),
		habitDaily: make([]map[string]tally, len(habits)),
	}

	active := make(map[string]struct{})
	for i, habit := range habits {
		h := newHabitHistory(habit.ID, logs)
		a.histories[i] = h
		a.habitDaily[i] = make(map[string]tally, len(h.dates))

		counts := &a.perHabit[i]
		for _, d := range h.dates {
			date := calendar.FormatDate(d)
			status := h.byDate[date]
			active[date] = struct{}{}
			if a.firstYear == 0 || d.Year() < a.firstYear {
				a.firstYear = d.Year()
			}

			if status == models.LogStatusSkipped {
				counts.skipped++
				continue
			}

			wd := calendar.MondayIndex(d.Weekday())
			counts.tally.add(status)
			counts.weekdays[wd].add(status)
			a.weekdays[wd].add(status)
			a.overall.add(status)

			day := a.daily[date]
			day.add(status)
			a.daily[date] = day

			hd := a.habitDaily[i][date]
			hd.add(status)
			a.habitDaily[i][date] = hd
		}
	}
	a.activeDays = len(active)
	return a
}

// sumRange totals days in [start, end] from the given daily index
func sumRange(daily map[string]tally, start, end time.Time) tally {
	var t tally
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		t.merge(daily[calendar.FormatDate(d)])
	}
	return t
}

func weekdayStats(weekdays [7]tally) []models.WeekdayStat {
	stats := make([]models.WeekdayStat, 7)
	for i, t := range weekdays {
		stats[i] = models.WeekdayStat{
			Day:   calendar.WeekdayLabel(i),
			Rate:  t.rate(),
			Done:  t.done,
			Total: t.total,
		}
	}
	return stats
}

// worstWeekday returns the Monday-first index with the lowest rate among
// weekdays that have data. Ties go to the earlier weekday.
func worstWeekday(weekdays [7]tally) (int, bool) {
	worst, found := 0, false
	for i, t := range weekdays {
		if t.total == 0 {
			continue
		}
		if !found || t.rate() < weekdays[worst].rate() {
			worst, found = i, true
		}
	}
	return worst, found
}

func (a *aggregator) trend(timeframe models.Timeframe, today time.Time) []models.TrendPoint {
	var points []models.TrendPoint
	add := func(label string, start, end time.Time) {
		t := sumRange(a.daily, start, end)
		points = append(points, models.TrendPoint{
			Label: label,
			Start: calendar.FormatDate(start),
			End:   calendar.FormatDate(end),
			Rate:  t.rate(),
			Done:  t.done,
			Total: t.total,
		})
	}

	switch timeframe {
	case models.TimeframeMonthly:
		for _, w := range calendar.MonthLayout(today) {
			start, _ := calendar.ParseDate(w.Start)
			end, _ := calendar.ParseDate(w.End)
			add(fmt.Sprintf("Week %d", w.Week), start, end)
		}
	case models.TimeframeAnnual:
		for month := time.January; month <= time.December; month++ {
			start := time.Date(today.Year(), month, 1, 0, 0, 0, 0, time.UTC)
			add(start.Format("Jan"), start, calendar.EndOfMonth(start))
		}
	case models.TimeframeAll:
		first := a.firstYear
		if first == 0 || first > today.Year() {
			first = today.Year()
		}
		for year := first; year <= today.Year(); year++ {
			start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
			add(strconv.Itoa(year), start, end)
		}
	default:
		for i := 6; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			add(day.Format("Mon"), day, day)
		}
	}
	return points
}

// periodBounds returns the current period (up to today) and the full previous period
func periodBounds(period models.Timeframe, today time.Time) (curStart, prevStart, prevEnd time.Time) {
	switch period {
	case models.TimeframeMonthly:
		curStart = calendar.StartOfMonth(today)
		prevStart = curStart.AddDate(0, -1, 0)
	case models.TimeframeAnnual:
		curStart = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(-1, 0, 0)
	default:
		curStart = calendar.StartOfWeek(today)
		prevStart = curStart.AddDate(0, 0, -7)
	}
	prevEnd = curStart.AddDate(0, 0, -1)
	return curStart, prevStart, prevEnd
}

func (a *aggregator) compare(habits []models.Habit, period models.Timeframe, today time.Time) models.PeriodComparison {
	curStart, prevStart, prevEnd := periodBounds(period, today)

	current := sumRange(a.daily, curStart, today).rate()
	previous := sumRange(a.daily, prevStart, prevEnd).rate()

	cmp := models.PeriodComparison{
		Period:    period,
		Current:   current,
		Previous:  previous,
		Change:    current - previous,
		Direction: direction(current - previous),
		Habits:    make([]models.HabitComparison, 0, len(habits)),
	}

	for i, habit := range habits {
		cur := sumRange(a.habitDaily[i], curStart, today)
		prev := sumRange(a.habitDaily[i], prevStart, prevEnd)
		if cur.total == 0 && prev.total == 0 {
			continue
		}
		cmp.Habits = append(cmp.Habits, models.HabitComparison{
			HabitID:  habit.ID,
			Title:    habit.Title,
			Current:  cur.rate(),
			Previous: prev.rate(),
			Change:   cur.rate() - prev.rate(),
		})
	}
	return cmp
}

func direction(change int) string {
	switch {
	case change > comparisonBand:
		return "up"
	case change < -comparisonBand:
		return "down"
	default:
		return "same"
	}
}

func criticalHabit(habit models.Habit, stat models.HabitStat, counts habitCounts, h habitHistory, today time.Time) models.CriticalHabit {
	ch := models.CriticalHabit{
		HabitID:        habit.ID,
		Title:          habit.Title,
		Color:          habit.Color,
		CompletionRate: stat.CompletionRate,
		WorstDay:       NoData,
		BrokenStreaks:  h.brokenStreaks(today, BrokenStreakWindow),
	}

	if idx, ok := worstWeekday(counts.weekdays); ok {
		ch.WorstDay = calendar.WeekdayLabel(idx)
		ch.WorstDayRate = counts.weekdays[idx].rate()
	}

	switch {
	case ch.BrokenStreaks >= criticalBrokenStreaks:
		ch.Issue = fmt.Sprintf("Streak broken %d times in the last %d days", ch.BrokenStreaks, BrokenStreakWindow)
	case ch.CompletionRate < criticalRate:
		ch.Issue = fmt.Sprintf("Completed only %d%% of the time", ch.CompletionRate)
	}
	return ch
}
