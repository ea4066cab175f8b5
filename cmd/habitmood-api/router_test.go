package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/config"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository/mocks"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct{}

func (stubVerifier) VerifyToken(ctx context.Context, token string) (*supabase.User, error) {
	if token == "valid" {
		return &supabase.User{ID: "user-1"}, nil
	}
	return nil, errors.New("invalid token")
}

type stubChecker struct{}

func (stubChecker) HealthCheck(ctx context.Context) (time.Duration, error) {
	return 5 * time.Millisecond, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", Env: "test", RateLimit: 1000, StatsRateLimit: 1000},
		Log:    config.LogConfig{Level: "error", Format: "json"},
	}
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	habits := mocks.NewMockHabitRepository(ctrl)
	logs := mocks.NewMockLogRepository(ctrl)
	moods := mocks.NewMockMoodRepository(ctrl)
	c := cache.NewMemory(time.Minute)

	habits.EXPECT().ListActive(gomock.Any(), "user-1").Return([]models.Habit{{ID: "h1", Title: "Read"}}, nil).AnyTimes()
	logs.EXPECT().GetLogs(gomock.Any(), "user-1", gomock.Any()).Return(models.LogsMap{}, nil).AnyTimes()

	svc := services{
		habits:   service.NewHabitService(habits, c),
		logs:     service.NewLogService(logs, habits, c),
		moods:    service.NewMoodService(moods, c),
		stats:    service.NewStatsService(habits, logs, moods, c, service.StatsOptions{}),
		system:   service.NewSystemService(stubChecker{}),
		verifier: stubVerifier{},
	}
	log := logger.NewSlogLogger(logger.Config{Level: logger.LevelError, Format: "json", Output: httptest.NewRecorder()})
	r := newRouter(testConfig(), log, svc)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{name: "health is public", path: "/health", wantStatus: http.StatusOK},
		{name: "metrics are exposed", path: "/metrics", wantStatus: http.StatusOK},
		{name: "system status is public", path: "/api/v1/system/status", wantStatus: http.StatusOK},
		{name: "calendar is public", path: "/api/v1/calendar/weeks?month=2026-02", wantStatus: http.StatusOK},
		{name: "habits need a token", path: "/api/v1/habits", wantStatus: http.StatusUnauthorized},
		{name: "habits with token", path: "/api/v1/habits", token: "valid", wantStatus: http.StatusOK},
		{name: "stats with token", path: "/api/v1/stats?timeframe=monthly&today=2026-02-11", token: "valid", wantStatus: http.StatusOK},
		{name: "unknown route", path: "/api/v1/nope", token: "valid", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
		})
	}
}
