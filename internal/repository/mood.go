package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
)

const moodsTable = "daily_moods"

type moodRepository struct {
	client *supabase.Client
}

// NewMoodRepository creates a new daily mood repository
func NewMoodRepository(client *supabase.Client) MoodRepository {
	return &moodRepository{client: client}
}

func decodeMoods(body []byte) ([]models.DailyMood, error) {
	var moods []models.DailyMood
	if err := json.Unmarshal(body, &moods); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return moods, nil
}

func (r *moodRepository) List(ctx context.Context, userID string) ([]models.DailyMood, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "date.desc",
	}

	body, err := r.client.Query(ctx, moodsTable, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}

	moods, err := decodeMoods(body)
	if err != nil {
		return nil, err
	}
	if moods == nil {
		moods = []models.DailyMood{}
	}
	return moods, nil
}

func (r *moodRepository) GetByDate(ctx context.Context, userID, date string) (*models.DailyMood, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date),
		"limit":   1,
	}

	body, err := r.client.Query(ctx, moodsTable, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood: %w", err)
	}

	moods, err := decodeMoods(body)
	if err != nil {
		return nil, err
	}
	if len(moods) == 0 {
		return nil, ErrNotFound
	}
	return &moods[0], nil
}

// Upsert writes the day's mood; a second save for the same (user_id, date) overwrites the first
func (r *moodRepository) Upsert(ctx context.Context, mood *models.DailyMood) (*models.DailyMood, error) {
	data := map[string]interface{}{
		"user_id":      mood.UserID,
		"date":         mood.Date,
		"mood_score":   mood.MoodScore,
		"energy_score": mood.EnergyScore,
		"note":         mood.Note,
	}

	body, err := r.client.Upsert(ctx, moodsTable, data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert mood: %w", err)
	}

	moods, err := decodeMoods(body)
	if err != nil {
		return nil, err
	}
	if len(moods) == 0 {
		return nil, fmt.Errorf("no mood returned")
	}
	return &moods[0], nil
}
