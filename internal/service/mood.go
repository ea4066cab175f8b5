package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
)

type moodService struct {
	moodRepo repository.MoodRepository
	cache    cache.Cache
}

// NewMoodService creates a new daily mood service
func NewMoodService(moodRepo repository.MoodRepository, c cache.Cache) MoodService {
	return &moodService{moodRepo: moodRepo, cache: c}
}

func (s *moodService) ListMoods(ctx context.Context, userID string) ([]models.DailyMood, error) {
	moods, err := s.moodRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}
	return moods, nil
}

func (s *moodService) GetMood(ctx context.Context, userID, date string) (*models.DailyMood, error) {
	if !calendar.IsDate(date) {
		return nil, ErrInvalidDate
	}

	mood, err := s.moodRepo.GetByDate(ctx, userID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mood: %w", err)
	}
	return mood, nil
}

func validScore(score int) bool {
	return score >= models.MinScore && score <= models.MaxScore
}

// LogMood records the day's mood. Saving twice for one date overwrites the earlier entry.
func (s *moodService) LogMood(ctx context.Context, userID string, req *models.LogMoodRequest) (*models.DailyMood, error) {
	if !calendar.IsDate(req.Date) {
		return nil, ErrInvalidDate
	}
	if !validScore(req.MoodScore) || !validScore(req.EnergyScore) {
		return nil, ErrInvalidScore
	}

	mood := &models.DailyMood{
		UserID:      userID,
		Date:        req.Date,
		MoodScore:   req.MoodScore,
		EnergyScore: req.EnergyScore,
	}
	if req.Note != nil {
		if note := strings.TrimSpace(*req.Note); note != "" {
			mood.Note = &note
		}
	}

	saved, err := s.moodRepo.Upsert(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("failed to save mood: %w", err)
	}

	invalidate(ctx, s.cache, userID)
	return saved, nil
}
