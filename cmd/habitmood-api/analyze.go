package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/analysis"
	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute statistics from an exported snapshot",
	Long: `Run the habit statistics and mood correlation engines over a JSON export
of goals, goal_logs and daily_moods rows, and print the result as JSON.`,
	RunE: runAnalyze,
}

var analyzeOpts struct {
	file       string
	timeframe  string
	today      string
	days       int
	minSamples int
	topN       int
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOpts.file, "file", "f", "", "Snapshot JSON file (required)")
	f.StringVarP(&analyzeOpts.timeframe, "timeframe", "t", string(models.TimeframeWeekly), "weekly, monthly, annual or all")
	f.StringVar(&analyzeOpts.today, "today", "", "Reference date YYYY-MM-DD (defaults to today, UTC)")
	f.IntVar(&analyzeOpts.days, "days", 0, "Correlation log window in days (0 uses every log)")
	f.IntVar(&analyzeOpts.minSamples, "min-samples", analysis.DefaultMinSamples, "Minimum days of data for an insight")
	f.IntVar(&analyzeOpts.topN, "top", analysis.DefaultTopN, "Entries per insight list")
	_ = analyzeCmd.MarkFlagRequired("file")
}

// snapshotFile is the export format read by analyze
type snapshotFile struct {
	Habits []models.Habit     `json:"habits"`
	Logs   []models.LogEntry  `json:"logs"`
	Moods  []models.DailyMood `json:"moods"`
}

func (s snapshotFile) logsMap() models.LogsMap {
	logs := make(models.LogsMap)
	for _, e := range s.Logs {
		logs.Set(e.Date, e.HabitID, e.Status)
	}
	return logs
}

// activeHabits drops archived habits, matching what the API feeds the engines
func (s snapshotFile) activeHabits() []models.Habit {
	out := make([]models.Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		if !h.Archived {
			out = append(out, h)
		}
	}
	return out
}

func readSnapshot(r io.Reader) (*snapshotFile, error) {
	var snap snapshotFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	timeframe := models.Timeframe(analyzeOpts.timeframe)
	if !timeframe.Valid() {
		return fmt.Errorf("invalid timeframe %q", analyzeOpts.timeframe)
	}

	today := time.Now().UTC()
	if analyzeOpts.today != "" {
		d, err := calendar.ParseDate(analyzeOpts.today)
		if err != nil {
			return err
		}
		today = d
	}

	f, err := os.Open(analyzeOpts.file)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := readSnapshot(f)
	if err != nil {
		return err
	}

	dashboard := analyze(snap, timeframe, today, analyzeOpts.days, analysis.InsightOptions{
		MinSamples: analyzeOpts.minSamples,
		TopN:       analyzeOpts.topN,
	})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dashboard)
}

func analyze(snap *snapshotFile, timeframe models.Timeframe, today time.Time, days int, opts analysis.InsightOptions) models.Dashboard {
	habits := snap.activeHabits()
	logs := snap.logsMap()

	corrLogs := logs
	if days > 0 {
		cutoff := calendar.FormatDate(calendar.StartOfDay(today).AddDate(0, 0, -(days - 1)))
		corrLogs = make(models.LogsMap, len(logs))
		for date, day := range logs {
			if date >= cutoff {
				corrLogs[date] = day
			}
		}
	}

	correlations := analysis.ComputeCorrelations(habits, corrLogs, snap.Moods)
	return models.Dashboard{
		Stats: analysis.ComputeHabitStats(habits, logs, timeframe, today),
		MoodCorrelation: models.MoodCorrelationResponse{
			Correlations: correlations,
			Insights:     analysis.BuildInsights(correlations, opts),
			WindowDays:   days,
		},
	}
}
