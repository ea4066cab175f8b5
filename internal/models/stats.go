package models

// Timeframe selects the bucketing of trend data
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAnnual  Timeframe = "annual"
	TimeframeAll     Timeframe = "all"
)

// Valid reports whether tf is a known timeframe
func (tf Timeframe) Valid() bool {
	switch tf {
	case TimeframeWeekly, TimeframeMonthly, TimeframeAnnual, TimeframeAll:
		return true
	}
	return false
}

// ScoreCategory buckets a 1-10 mood or energy score
type ScoreCategory string

const (
	ScoreLow    ScoreCategory = "low"    // 1-4
	ScoreMedium ScoreCategory = "medium" // 5-7
	ScoreHigh   ScoreCategory = "high"   // 8-10
)

// CategoryRates holds a completion percentage (0-100) per score category
type CategoryRates struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// HabitMoodCorrelation relates one habit's completions to the user's mood and energy
type HabitMoodCorrelation struct {
	HabitID    string `json:"habit_id"`
	HabitTitle string `json:"habit_title"`
	HabitColor string `json:"habit_color"`

	AvgMoodWhenCompleted   float64 `json:"avg_mood_when_completed"`
	AvgMoodWhenMissed      float64 `json:"avg_mood_when_missed"`
	AvgEnergyWhenCompleted float64 `json:"avg_energy_when_completed"`
	AvgEnergyWhenMissed    float64 `json:"avg_energy_when_missed"`

	CompletionRateByMood   CategoryRates `json:"completion_rate_by_mood"`
	CompletionRateByEnergy CategoryRates `json:"completion_rate_by_energy"`

	// Pearson r in [-1, 1]
	MoodCorrelation   float64 `json:"mood_correlation"`
	EnergyCorrelation float64 `json:"energy_correlation"`

	IsMoodSensitive   bool `json:"is_mood_sensitive"`
	IsEnergySensitive bool `json:"is_energy_sensitive"`
	IsResilient       bool `json:"is_resilient"`

	TotalDaysWithMoodData int `json:"total_days_with_mood_data"`
	DaysCompleted         int `json:"days_completed"`
	DaysMissed            int `json:"days_missed"`
}

// MoodEnergyInsights ranks correlations into the buckets shown to the user
type MoodEnergyInsights struct {
	MoodSensitiveHabits   []HabitMoodCorrelation `json:"mood_sensitive_habits"`
	EnergySensitiveHabits []HabitMoodCorrelation `json:"energy_sensitive_habits"`
	ResilientHabits       []HabitMoodCorrelation `json:"resilient_habits"`
	BestAtHighMood        []HabitMoodCorrelation `json:"best_at_high_mood"`
	BestAtLowMood         []HabitMoodCorrelation `json:"best_at_low_mood"`
	BestAtHighEnergy      []HabitMoodCorrelation `json:"best_at_high_energy"`
	BestAtLowEnergy       []HabitMoodCorrelation `json:"best_at_low_energy"`
}

// MoodCorrelationResponse is the API response for the correlation view
type MoodCorrelationResponse struct {
	Correlations []HabitMoodCorrelation `json:"correlations"`
	Insights     MoodEnergyInsights     `json:"insights"`
	WindowDays   int                    `json:"window_days"`
}

// HabitStat summarizes one habit's history
type HabitStat struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Color          string `json:"color"`
	CompletionRate int    `json:"completion_rate"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	WorstStreak    int    `json:"worst_streak"`
	TotalDone      int    `json:"total_done"`
	TotalMissed    int    `json:"total_missed"`
	TotalSkipped   int    `json:"total_skipped"`
}

// WeekdayStat is the aggregate completion rate for one weekday
type WeekdayStat struct {
	Day   string `json:"day"`
	Rate  int    `json:"rate"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// TrendPoint is one bucket of the trend series
type TrendPoint struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
	Rate  int    `json:"rate"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// HabitComparison is one habit's current vs previous period rate
type HabitComparison struct {
	HabitID  string `json:"habit_id"`
	Title    string `json:"title"`
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
	Change   int    `json:"change"`
}

// PeriodComparison compares the current period with the one before it
type PeriodComparison struct {
	Period    Timeframe         `json:"period"`
	Current   int               `json:"current"`
	Previous  int               `json:"previous"`
	Change    int               `json:"change"`
	Direction string            `json:"direction"` // "up", "down", "same"
	Habits    []HabitComparison `json:"habits"`
}

// CriticalHabit flags where a habit struggles
type CriticalHabit struct {
	HabitID        string `json:"habit_id"`
	Title          string `json:"title"`
	Color          string `json:"color"`
	CompletionRate int    `json:"completion_rate"`
	WorstDay       string `json:"worst_day"`
	WorstDayRate   int    `json:"worst_day_rate"`
	BrokenStreaks  int    `json:"broken_streaks"`
	Issue          string `json:"issue,omitempty"`
}

// HabitStatsBundle is everything the statistics page renders
type HabitStatsBundle struct {
	Timeframe         Timeframe          `json:"timeframe"`
	TotalActiveDays   int                `json:"total_active_days"`
	GlobalSuccessRate int                `json:"global_success_rate"`
	BestStreak        int                `json:"best_streak"`
	WorstDay          string             `json:"worst_day"`
	HabitStats        []HabitStat        `json:"habit_stats"`
	WeekdayStats      []WeekdayStat      `json:"weekday_stats"`
	TrendData         []TrendPoint       `json:"trend_data"`
	HeatmapData       map[string]float64 `json:"heatmap_data"`
	Comparisons       []PeriodComparison `json:"comparisons"`
	CriticalHabits    []CriticalHabit    `json:"critical_habits"`
}

// Dashboard combines both statistics views
type Dashboard struct {
	Stats           HabitStatsBundle        `json:"stats"`
	MoodCorrelation MoodCorrelationResponse `json:"mood_correlation"`
}
