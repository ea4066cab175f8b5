package service

import (
	"context"

	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
)

// invalidate drops the user's cached statistics after a write.
// A failure only means stale results until the TTL expires, so it is logged, not returned.
func invalidate(ctx context.Context, c cache.Cache, userID string) {
	if c == nil {
		return
	}
	if err := c.InvalidateUser(ctx, userID); err != nil {
		logger.Ctx(ctx).Warn("failed to invalidate stats cache", logger.Err(err), logger.String("user_id", userID))
	}
}
