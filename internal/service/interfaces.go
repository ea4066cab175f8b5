package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

// HabitService defines the interface for habit business logic
type HabitService interface {
	ListHabits(ctx context.Context, userID string) ([]models.Habit, error)
	CreateHabit(ctx context.Context, userID string, req *models.CreateHabitRequest) (*models.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID string, req *models.UpdateHabitRequest) (*models.Habit, error)
	ReorderHabits(ctx context.Context, userID string, req *models.ReorderHabitsRequest) error
	// DeleteHabit archives a habit that has logs and hard-deletes one that has none
	DeleteHabit(ctx context.Context, userID, habitID string) (models.DeleteHabitResult, error)
}

// LogService defines the interface for completion log business logic
type LogService interface {
	GetLogs(ctx context.Context, userID string, since *time.Time) (models.LogsMap, error)
	SetStatus(ctx context.Context, userID string, req *models.SetLogRequest) (*models.LogEntry, error)
	ClearStatus(ctx context.Context, userID, habitID, date string) error
}

// MoodService defines the interface for daily mood business logic
type MoodService interface {
	ListMoods(ctx context.Context, userID string) ([]models.DailyMood, error)
	// GetMood returns nil without error when nothing was logged for date
	GetMood(ctx context.Context, userID, date string) (*models.DailyMood, error)
	LogMood(ctx context.Context, userID string, req *models.LogMoodRequest) (*models.DailyMood, error)
}

// StatsService runs the statistics engines over the user's data
type StatsService interface {
	GetHabitStats(ctx context.Context, userID string, timeframe models.Timeframe, today time.Time) (*models.HabitStatsBundle, error)
	// GetMoodCorrelation uses the last days of logs; days <= 0 selects the configured window
	GetMoodCorrelation(ctx context.Context, userID string, days int, today time.Time) (*models.MoodCorrelationResponse, error)
	GetDashboard(ctx context.Context, userID string, timeframe models.Timeframe, today time.Time) (*models.Dashboard, error)
}

// SystemService reports backend reachability
type SystemService interface {
	Status(ctx context.Context) *models.SystemStatus
}
