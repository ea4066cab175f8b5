package main

import (
	"strings"
	"testing"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/analysis"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

const snapshotJSON = `{
  "habits": [
    {"id": "h1", "title": "Read", "color": "#111"},
    {"id": "h2", "title": "Old", "color": "#222", "archived": true}
  ],
  "logs": [
    {"goal_id": "h1", "date": "2026-01-01", "status": "done"},
    {"goal_id": "h1", "date": "2026-02-09", "status": "done"},
    {"goal_id": "h1", "date": "2026-02-10", "status": "missed"},
    {"goal_id": "h1", "date": "2026-02-11", "status": "done"},
    {"goal_id": "h2", "date": "2026-02-11", "status": "done"}
  ],
  "moods": [
    {"date": "2026-01-01", "mood_score": 9, "energy_score": 9},
    {"date": "2026-02-09", "mood_score": 8, "energy_score": 7},
    {"date": "2026-02-10", "mood_score": 3, "energy_score": 2},
    {"date": "2026-02-11", "mood_score": 7, "energy_score": 8}
  ]
}`

func TestAnalyzeSnapshot(t *testing.T) {
	snap, err := readSnapshot(strings.NewReader(snapshotJSON))
	if err != nil {
		t.Fatalf("readSnapshot failed: %v", err)
	}
	today := time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		days         int
		wantMoodDays int
	}{
		{name: "all logs", days: 0, wantMoodDays: 4},
		{name: "windowed", days: 7, wantMoodDays: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := analyze(snap, models.TimeframeAll, today, tt.days, analysis.InsightOptions{})

			if len(d.Stats.HabitStats) != 1 {
				t.Fatalf("archived habit should be excluded, got %d stats", len(d.Stats.HabitStats))
			}
			if d.Stats.HabitStats[0].CompletionRate != 75 {
				t.Errorf("CompletionRate = %d, want 75", d.Stats.HabitStats[0].CompletionRate)
			}
			if d.Stats.HabitStats[0].CurrentStreak != 1 {
				t.Errorf("CurrentStreak = %d, want 1", d.Stats.HabitStats[0].CurrentStreak)
			}
			if got := d.MoodCorrelation.Correlations[0].TotalDaysWithMoodData; got != tt.wantMoodDays {
				t.Errorf("TotalDaysWithMoodData = %d, want %d", got, tt.wantMoodDays)
			}
		})
	}
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := readSnapshot(strings.NewReader("[1,2")); err == nil {
		t.Error("expected decode error")
	}
}
