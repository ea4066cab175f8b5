package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
)

// HealthChecker probes the backing store
type HealthChecker interface {
	HealthCheck(ctx context.Context) (time.Duration, error)
}

type systemService struct {
	checker HealthChecker
	now     func() time.Time
}

// NewSystemService creates a new system status service
func NewSystemService(checker HealthChecker) SystemService {
	return &systemService{checker: checker, now: time.Now}
}

func (s *systemService) Status(ctx context.Context) *models.SystemStatus {
	status := &models.SystemStatus{
		Status:    "active",
		CheckedAt: s.now().UTC().Format(time.RFC3339),
	}

	latency, err := s.checker.HealthCheck(ctx)
	if err != nil {
		logger.Ctx(ctx).Warn("backend health check failed", logger.Err(err), logger.Duration("latency", latency))
		status.Status = "error"
		return status
	}

	ms := latency.Milliseconds()
	status.LatencyMS = &ms
	return status
}
