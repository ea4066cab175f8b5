package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
)

type logService struct {
	logRepo   repository.LogRepository
	habitRepo repository.HabitRepository
	cache     cache.Cache
}

// NewLogService creates a new completion log service
func NewLogService(logRepo repository.LogRepository, habitRepo repository.HabitRepository, c cache.Cache) LogService {
	return &logService{logRepo: logRepo, habitRepo: habitRepo, cache: c}
}

func (s *logService) GetLogs(ctx context.Context, userID string, since *time.Time) (models.LogsMap, error) {
	logs, err := s.logRepo.GetLogs(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}
	return logs, nil
}

func (s *logService) SetStatus(ctx context.Context, userID string, req *models.SetLogRequest) (*models.LogEntry, error) {
	if !calendar.IsDate(req.Date) {
		return nil, ErrInvalidDate
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := ValidateID(req.HabitID); err != nil {
		return nil, err
	}

	if _, err := s.habitRepo.GetByID(ctx, userID, req.HabitID); err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	entry, err := s.logRepo.SetStatus(ctx, &models.LogEntry{
		UserID:  userID,
		HabitID: req.HabitID,
		Date:    req.Date,
		Status:  req.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set status: %w", err)
	}

	invalidate(ctx, s.cache, userID)
	return entry, nil
}

func (s *logService) ClearStatus(ctx context.Context, userID, habitID, date string) error {
	if !calendar.IsDate(date) {
		return ErrInvalidDate
	}
	if err := ValidateID(habitID); err != nil {
		return err
	}

	if err := s.logRepo.Clear(ctx, userID, habitID, date); err != nil {
		return fmt.Errorf("failed to clear status: %w", err)
	}

	invalidate(ctx, s.cache, userID)
	return nil
}
