package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/habitmood/backend/internal/analysis"
	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
)

// DefaultWindowDays is the log window used for mood correlations
const DefaultWindowDays = 30

const (
	kindStats       = "habits"
	kindCorrelation = "correlation"
)

// StatsOptions tunes the statistics engines
type StatsOptions struct {
	MinSamples int
	TopN       int
	WindowDays int
}

func (o StatsOptions) windowDays(days int) int {
	if days > 0 {
		return days
	}
	if o.WindowDays > 0 {
		return o.WindowDays
	}
	return DefaultWindowDays
}

type statsService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.LogRepository
	moodRepo  repository.MoodRepository
	cache     cache.Cache
	opts      StatsOptions
}

// NewStatsService creates a new statistics service. c may be nil to disable caching.
func NewStatsService(
	habitRepo repository.HabitRepository,
	logRepo repository.LogRepository,
	moodRepo repository.MoodRepository,
	c cache.Cache,
	opts StatsOptions,
) StatsService {
	return &statsService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		moodRepo:  moodRepo,
		cache:     c,
		opts:      opts,
	}
}

// snapshot is everything the engines read for one user
type snapshot struct {
	habits []models.Habit
	logs   models.LogsMap
	moods  []models.DailyMood
}

// fetch loads habits, logs and (optionally) moods concurrently.
// The first failure cancels the remaining requests.
func (s *statsService) fetch(ctx context.Context, userID string, since *time.Time, withMoods bool) (*snapshot, error) {
	snap := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		habits, err := s.habitRepo.ListActive(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		snap.habits = habits
		return nil
	})
	g.Go(func() error {
		logs, err := s.logRepo.GetLogs(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("failed to get logs: %w", err)
		}
		snap.logs = logs
		return nil
	})
	if withMoods {
		g.Go(func() error {
			moods, err := s.moodRepo.List(gctx, userID)
			if err != nil {
				return fmt.Errorf("failed to list moods: %w", err)
			}
			snap.moods = moods
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if snap.logs == nil {
		snap.logs = models.LogsMap{}
	}
	return snap, nil
}

// Cache inputs carry only the fields the engines read, so timestamp churn
// on otherwise identical rows still hits.
type habitKey struct {
	ID    string
	Title string
	Color string
}

type moodKey struct {
	Date   string
	Mood   int
	Energy int
}

type statsKey struct {
	Habits    []habitKey
	Logs      models.LogsMap
	Timeframe models.Timeframe
	Today     string
}

type correlationKey struct {
	Habits     []habitKey
	Logs       models.LogsMap
	Moods      []moodKey
	MinSamples int
	TopN       int
	WindowDays int
}

func habitKeys(habits []models.Habit) []habitKey {
	keys := make([]habitKey, len(habits))
	for i, h := range habits {
		keys[i] = habitKey{ID: h.ID, Title: h.Title, Color: h.Color}
	}
	return keys
}

func moodKeys(moods []models.DailyMood) []moodKey {
	keys := make([]moodKey, len(moods))
	for i, m := range moods {
		keys[i] = moodKey{Date: m.Date, Mood: m.MoodScore, Energy: m.EnergyScore}
	}
	return keys
}

// cached returns the memoized value for input, or runs compute and stores it
func cached[T any](ctx context.Context, c cache.Cache, userID, kind string, input interface{}, compute func() T) T {
	if c == nil {
		return compute()
	}
	log := logger.Ctx(ctx).With(logger.String("cache_kind", kind))

	key, err := cache.Key(userID, kind, input)
	if err != nil {
		log.Warn("failed to build cache key", logger.Err(err))
		return compute()
	}

	var out T
	found, err := c.Get(ctx, key, &out)
	if err != nil {
		log.Warn("stats cache read failed", logger.Err(err))
	}
	if found {
		statsCacheTotal.WithLabelValues(kind, "hit").Inc()
		return out
	}
	statsCacheTotal.WithLabelValues(kind, "miss").Inc()

	out = compute()
	if err := c.Set(ctx, key, out); err != nil {
		log.Warn("stats cache write failed", logger.Err(err))
	}
	return out
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *statsService) habitStats(ctx context.Context, userID string, snap *snapshot, timeframe models.Timeframe, today time.Time) models.HabitStatsBundle {
	input := statsKey{
		Habits:    habitKeys(snap.habits),
		Logs:      snap.logs,
		Timeframe: timeframe,
		Today:     calendar.FormatDate(today),
	}
	return cached(ctx, s.cache, userID, kindStats, input, func() models.HabitStatsBundle {
		defer observeEngine(kindStats, time.Now())
		return analysis.ComputeHabitStats(snap.habits, snap.logs, timeframe, today)
	})
}

func (s *statsService) correlation(ctx context.Context, userID string, snap *snapshot, windowDays int) models.MoodCorrelationResponse {
	input := correlationKey{
		Habits:     habitKeys(snap.habits),
		Logs:       snap.logs,
		Moods:      moodKeys(snap.moods),
		MinSamples: s.opts.MinSamples,
		TopN:       s.opts.TopN,
		WindowDays: windowDays,
	}
	return cached(ctx, s.cache, userID, kindCorrelation, input, func() models.MoodCorrelationResponse {
		defer observeEngine(kindCorrelation, time.Now())
		correlations := analysis.ComputeCorrelations(snap.habits, snap.logs, snap.moods)
		return models.MoodCorrelationResponse{
			Correlations: correlations,
			Insights: analysis.BuildInsights(correlations, analysis.InsightOptions{
				MinSamples: s.opts.MinSamples,
				TopN:       s.opts.TopN,
			}),
			WindowDays: windowDays,
		}
	})
}

func (s *statsService) GetHabitStats(ctx context.Context, userID string, timeframe models.Timeframe, today time.Time) (*models.HabitStatsBundle, error) {
	if !timeframe.Valid() {
		return nil, ErrInvalidTimeframe
	}
	today = dayOf(today)

	snap, err := s.fetch(ctx, userID, nil, false)
	if err != nil {
		return nil, err
	}

	bundle := s.habitStats(ctx, userID, snap, timeframe, today)
	return &bundle, nil
}

func (s *statsService) GetMoodCorrelation(ctx context.Context, userID string, days int, today time.Time) (*models.MoodCorrelationResponse, error) {
	days = s.opts.windowDays(days)
	since := dayOf(today).AddDate(0, 0, -(days - 1))

	snap, err := s.fetch(ctx, userID, &since, true)
	if err != nil {
		return nil, err
	}

	resp := s.correlation(ctx, userID, snap, days)
	return &resp, nil
}

// GetDashboard reads the snapshot once and runs both engines side by side.
// Correlations only see the trailing window of logs.
func (s *statsService) GetDashboard(ctx context.Context, userID string, timeframe models.Timeframe, today time.Time) (*models.Dashboard, error) {
	if !timeframe.Valid() {
		return nil, ErrInvalidTimeframe
	}
	today = dayOf(today)

	snap, err := s.fetch(ctx, userID, nil, true)
	if err != nil {
		return nil, err
	}

	days := s.opts.windowDays(0)
	windowed := &snapshot{
		habits: snap.habits,
		logs:   logsSince(snap.logs, today.AddDate(0, 0, -(days-1))),
		moods:  snap.moods,
	}

	var dashboard models.Dashboard
	var g errgroup.Group
	g.Go(func() error {
		dashboard.Stats = s.habitStats(ctx, userID, snap, timeframe, today)
		return nil
	})
	g.Go(func() error {
		dashboard.MoodCorrelation = s.correlation(ctx, userID, windowed, days)
		return nil
	})
	_ = g.Wait()

	return &dashboard, nil
}

// logsSince keeps entries dated on or after since
func logsSince(logs models.LogsMap, since time.Time) models.LogsMap {
	cutoff := calendar.FormatDate(since)
	out := make(models.LogsMap, len(logs))
	for date, day := range logs {
		// YYYY-MM-DD sorts lexically
		if date >= cutoff {
			out[date] = day
		}
	}
	return out
}
