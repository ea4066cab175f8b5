package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

// ErrNotFound is returned when a row does not exist or belongs to another user
var ErrNotFound = errors.New("not found")

// HabitRepository defines the interface for habit (goals table) data access
type HabitRepository interface {
	ListActive(ctx context.Context, userID string) ([]models.Habit, error)
	GetByID(ctx context.Context, userID, id string) (*models.Habit, error)
	Create(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateHabitRequest) (*models.Habit, error)
	SetOrder(ctx context.Context, userID string, order []models.HabitOrder) error
	Archive(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	HasLogs(ctx context.Context, userID, id string) (bool, error)
}

// LogRepository defines the interface for completion log (goal_logs table) data access
type LogRepository interface {
	// GetLogs returns every log entry on or after since; nil since means no lower bound
	GetLogs(ctx context.Context, userID string, since *time.Time) (models.LogsMap, error)
	SetStatus(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error)
	Clear(ctx context.Context, userID, habitID, date string) error
}

// MoodRepository defines the interface for daily mood (daily_moods table) data access
type MoodRepository interface {
	// List returns all moods, newest first
	List(ctx context.Context, userID string) ([]models.DailyMood, error)
	GetByDate(ctx context.Context, userID, date string) (*models.DailyMood, error)
	Upsert(ctx context.Context, mood *models.DailyMood) (*models.DailyMood, error)
}
