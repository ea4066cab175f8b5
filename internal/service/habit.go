package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
)

type habitService struct {
	habitRepo repository.HabitRepository
	cache     cache.Cache
}

// NewHabitService creates a new habit service
func NewHabitService(habitRepo repository.HabitRepository, c cache.Cache) HabitService {
	return &habitService{habitRepo: habitRepo, cache: c}
}

func (s *habitService) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	habits, err := s.habitRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

func (s *habitService) CreateHabit(ctx context.Context, userID string, req *models.CreateHabitRequest) (*models.Habit, error) {
	habit := &models.Habit{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
	}

	created, err := s.habitRepo.Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	invalidate(ctx, s.cache, userID)
	return created, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, userID, habitID string, req *models.UpdateHabitRequest) (*models.Habit, error) {
	if err := ValidateID(habitID); err != nil {
		return nil, err
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}

	updated, err := s.habitRepo.Update(ctx, userID, habitID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	invalidate(ctx, s.cache, userID)
	return updated, nil
}

func (s *habitService) ReorderHabits(ctx context.Context, userID string, req *models.ReorderHabitsRequest) error {
	ids := make([]string, len(req.Habits))
	for i, h := range req.Habits {
		ids[i] = h.ID
	}
	if err := ValidateIDs(ids...); err != nil {
		return err
	}

	if err := s.habitRepo.SetOrder(ctx, userID, req.Habits); err != nil {
		return fmt.Errorf("failed to reorder habits: %w", err)
	}

	invalidate(ctx, s.cache, userID)
	return nil
}

func (s *habitService) DeleteHabit(ctx context.Context, userID, habitID string) (models.DeleteHabitResult, error) {
	if err := ValidateID(habitID); err != nil {
		return "", err
	}

	if _, err := s.habitRepo.GetByID(ctx, userID, habitID); err != nil {
		return "", fmt.Errorf("failed to get habit: %w", err)
	}

	hasLogs, err := s.habitRepo.HasLogs(ctx, userID, habitID)
	if err != nil {
		return "", fmt.Errorf("failed to check habit history: %w", err)
	}

	log := logger.Ctx(ctx).With(logger.String("habit_id", habitID))
	defer invalidate(ctx, s.cache, userID)

	// History is kept for statistics, so habits with logs are only archived
	if hasLogs {
		if err := s.habitRepo.Archive(ctx, userID, habitID); err != nil {
			return "", fmt.Errorf("failed to archive habit: %w", err)
		}
		log.Info("habit archived")
		return models.DeleteResultArchived, nil
	}

	if err := s.habitRepo.Delete(ctx, userID, habitID); err != nil {
		return "", fmt.Errorf("failed to delete habit: %w", err)
	}
	log.Info("habit deleted")
	return models.DeleteResultDeleted, nil
}
