// Package analysis holds the pure statistics engines: habit/mood correlation
// and habit performance aggregation. Nothing here performs I/O; callers pass
// plain snapshots and receive fresh results, so every function is safe to call
// concurrently.
package analysis

import (
	"math"
	"sort"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

const (
	// Sensitivity requires the high-vs-low completion gap to exceed this many points
	SensitivityRateGap = 30.0
	// ...and the Pearson coefficient to exceed this value
	SensitivityCorrelation = 0.3
	// Resilient habits keep at least this completion rate at low mood and low energy
	ResilienceRate = 60.0

	// DefaultMinSamples is the joined sample size required for the sensitivity
	// and resilience rankings
	DefaultMinSamples = 5
	// DefaultTopN is the length of each insight list
	DefaultTopN = 3
)

// InsightOptions tunes BuildInsights. Zero values select the defaults.
type InsightOptions struct {
	MinSamples int
	TopN       int
}

func (o InsightOptions) withDefaults() InsightOptions {
	if o.MinSamples <= 0 {
		o.MinSamples = DefaultMinSamples
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

// CategorizeScore buckets a mood or energy score: low <= 4, medium 5-7, high >= 8
func CategorizeScore(score int) models.ScoreCategory {
	switch {
	case score <= 4:
		return models.ScoreLow
	case score <= 7:
		return models.ScoreMedium
	default:
		return models.ScoreHigh
	}
}

// PearsonCorrelation computes
//
//	r = (n·Σxy − Σx·Σy) / sqrt((n·Σx² − (Σx)²)(n·Σy² − (Σy)²))
//
// It returns 0 for empty or mismatched series and when either series has no
// variance, and clamps rounding drift so the result always lies in [-1, 1].
func PearsonCorrelation(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	fn := float64(n)
	numerator := fn*sumXY - sumX*sumY
	varX := fn*sumX2 - sumX*sumX
	varY := fn*sumY2 - sumY*sumY
	if varX <= 0 || varY <= 0 {
		return 0
	}

	denominator := math.Sqrt(varX * varY)
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return 0
	}

	r := numerator / denominator
	switch {
	case math.IsNaN(r):
		return 0
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

// joinedSample is one day where both a habit log and a mood record exist
type joinedSample struct {
	completed bool
	mood      int
	energy    int
}

type moodPoint struct {
	mood   int
	energy int
}

// ComputeCorrelations relates every habit to the user's mood and energy.
//
// Only dates that carry both a log entry for the habit and a mood record are
// sampled. A done entry counts as completed; any other present status counts
// as not completed. Returns an empty slice when there is no mood data.
func ComputeCorrelations(habits []models.Habit, logs models.LogsMap, moods []models.DailyMood) []models.HabitMoodCorrelation {
	correlations := make([]models.HabitMoodCorrelation, 0, len(habits))
	if len(moods) == 0 || len(habits) == 0 {
		return correlations
	}

	moodByDate := make(map[string]moodPoint, len(moods))
	for _, m := range moods {
		moodByDate[m.Date] = moodPoint{mood: m.MoodScore, energy: m.EnergyScore}
	}

	// Iterate dates in order so float sums are reproducible
	dates := make([]string, 0, len(logs))
	for date := range logs {
		if _, ok := moodByDate[date]; ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	for _, habit := range habits {
		samples := make([]joinedSample, 0, len(dates))
		for _, date := range dates {
			status, ok := logs[date][habit.ID]
			if !ok || status == "" {
				continue
			}
			mp := moodByDate[date]
			samples = append(samples, joinedSample{
				completed: status == models.LogStatusDone,
				mood:      mp.mood,
				energy:    mp.energy,
			})
		}
		correlations = append(correlations, correlate(habit, samples))
	}

	return correlations
}

func correlate(habit models.Habit, samples []joinedSample) models.HabitMoodCorrelation {
	c := models.HabitMoodCorrelation{
		HabitID:               habit.ID,
		HabitTitle:            habit.Title,
		HabitColor:            habit.Color,
		TotalDaysWithMoodData: len(samples),
	}

	var moodDone, moodMissed, energyDone, energyMissed float64
	var moodTotals, moodHits, energyTotals, energyHits categoryCounts

	moodSeries := make([]float64, len(samples))
	energySeries := make([]float64, len(samples))
	completedSeries := make([]float64, len(samples))

	for i, s := range samples {
		moodCat := CategorizeScore(s.mood)
		energyCat := CategorizeScore(s.energy)
		moodTotals.add(moodCat)
		energyTotals.add(energyCat)

		if s.completed {
			c.DaysCompleted++
			moodDone += float64(s.mood)
			energyDone += float64(s.energy)
			moodHits.add(moodCat)
			energyHits.add(energyCat)
			completedSeries[i] = 1
		} else {
			c.DaysMissed++
			moodMissed += float64(s.mood)
			energyMissed += float64(s.energy)
		}
		moodSeries[i] = float64(s.mood)
		energySeries[i] = float64(s.energy)
	}

	c.AvgMoodWhenCompleted = safeDiv(moodDone, c.DaysCompleted)
	c.AvgEnergyWhenCompleted = safeDiv(energyDone, c.DaysCompleted)
	c.AvgMoodWhenMissed = safeDiv(moodMissed, c.DaysMissed)
	c.AvgEnergyWhenMissed = safeDiv(energyMissed, c.DaysMissed)

	c.CompletionRateByMood = rates(moodHits, moodTotals)
	c.CompletionRateByEnergy = rates(energyHits, energyTotals)

	c.MoodCorrelation = PearsonCorrelation(moodSeries, completedSeries)
	c.EnergyCorrelation = PearsonCorrelation(energySeries, completedSeries)

	classify(&c)
	return c
}

// classify applies the sensitivity and resilience thresholds in place
func classify(c *models.HabitMoodCorrelation) {
	moodGap := c.CompletionRateByMood.High - c.CompletionRateByMood.Low
	c.IsMoodSensitive = moodGap > SensitivityRateGap && c.MoodCorrelation > SensitivityCorrelation

	energyGap := c.CompletionRateByEnergy.High - c.CompletionRateByEnergy.Low
	c.IsEnergySensitive = energyGap > SensitivityRateGap && c.EnergyCorrelation > SensitivityCorrelation

	c.IsResilient = c.CompletionRateByMood.Low >= ResilienceRate && c.CompletionRateByEnergy.Low >= ResilienceRate
}

type categoryCounts struct {
	low, medium, high int
}

func (cc *categoryCounts) add(cat models.ScoreCategory) {
	switch cat {
	case models.ScoreLow:
		cc.low++
	case models.ScoreMedium:
		cc.medium++
	case models.ScoreHigh:
		cc.high++
	}
}

func rates(hits, totals categoryCounts) models.CategoryRates {
	return models.CategoryRates{
		Low:    safeDiv(float64(hits.low), totals.low) * 100,
		Medium: safeDiv(float64(hits.medium), totals.medium) * 100,
		High:   safeDiv(float64(hits.high), totals.high) * 100,
	}
}

// safeDiv returns sum/count, or 0 when count is zero
func safeDiv(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// BuildInsights ranks correlations into insight lists.
//
// The sensitivity and resilience rankings only consider habits with at least
// opts.MinSamples joined days. The four best-at lists rank every correlation.
// Ties keep the input order.
func BuildInsights(correlations []models.HabitMoodCorrelation, opts InsightOptions) models.MoodEnergyInsights {
	opts = opts.withDefaults()

	valid := make([]models.HabitMoodCorrelation, 0, len(correlations))
	for _, c := range correlations {
		if c.TotalDaysWithMoodData >= opts.MinSamples {
			valid = append(valid, c)
		}
	}

	return models.MoodEnergyInsights{
		MoodSensitiveHabits: rank(valid, opts.TopN,
			func(c models.HabitMoodCorrelation) bool { return c.IsMoodSensitive },
			func(c models.HabitMoodCorrelation) float64 { return c.MoodCorrelation }),
		EnergySensitiveHabits: rank(valid, opts.TopN,
			func(c models.HabitMoodCorrelation) bool { return c.IsEnergySensitive },
			func(c models.HabitMoodCorrelation) float64 { return c.EnergyCorrelation }),
		ResilientHabits: rank(valid, opts.TopN,
			func(c models.HabitMoodCorrelation) bool { return c.IsResilient },
			func(c models.HabitMoodCorrelation) float64 {
				return c.CompletionRateByMood.Low + c.CompletionRateByEnergy.Low
			}),
		BestAtHighMood: rank(correlations, opts.TopN, nil,
			func(c models.HabitMoodCorrelation) float64 { return c.CompletionRateByMood.High }),
		BestAtLowMood: rank(correlations, opts.TopN, nil,
			func(c models.HabitMoodCorrelation) float64 { return c.CompletionRateByMood.Low }),
		BestAtHighEnergy: rank(correlations, opts.TopN, nil,
			func(c models.HabitMoodCorrelation) float64 { return c.CompletionRateByEnergy.High }),
		BestAtLowEnergy: rank(correlations, opts.TopN, nil,
			func(c models.HabitMoodCorrelation) float64 { return c.CompletionRateByEnergy.Low }),
	}
}

// rank filters, sorts by score descending and truncates to n. The input is not modified.
func rank(
	in []models.HabitMoodCorrelation,
	n int,
	keep func(models.HabitMoodCorrelation) bool,
	score func(models.HabitMoodCorrelation) float64,
) []models.HabitMoodCorrelation {
	out := make([]models.HabitMoodCorrelation, 0, len(in))
	for _, c := range in {
		if keep == nil || keep(c) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
