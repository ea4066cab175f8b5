package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/apierror"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client in fixed windows
type RateLimiter struct {
	name   string
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	start time.Time
	count int
}

// NewRateLimiter allows limit requests per window for each client key.
// name labels the limiter in logs and metrics.
func NewRateLimiter(limit int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	go rl.sweep()

	logger.Default().Debug("rate limiter initialized",
		logger.String("limiter", name),
		logger.Int("limit", limit),
		logger.Duration("window", window),
	)
	return rl
}

// sweep drops buckets whose window ended at least one window ago
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := rl.now().Add(-2 * rl.window)
		dropped := 0
		for key, b := range rl.buckets {
			if b.start.Before(cutoff) {
				delete(rl.buckets, key)
				dropped++
			}
		}
		rl.mu.Unlock()

		if dropped > 0 {
			logger.Default().Debug("rate limiter swept", logger.String("limiter", rl.name), logger.Int("dropped", dropped))
		}
	}
}

// take records one request for key. It returns how many requests remain in
// the current window and how long until that window resets.
func (rl *RateLimiter) take(key string) (remaining int, reset time.Duration, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, found := rl.buckets[key]
	if !found || now.Sub(b.start) >= rl.window {
		b = &bucket{start: now}
		rl.buckets[key] = b
	}
	b.count++

	reset = b.start.Add(rl.window).Sub(now)
	if b.count > rl.limit {
		return 0, reset, false
	}
	return rl.limit - b.count, reset, true
}

// RateLimit limits every client IP to rate requests per minute
func RateLimit(rate int) gin.HandlerFunc {
	return rateLimitMiddleware(NewRateLimiter(rate, time.Minute, "general"))
}

// RateLimitStats is the tighter per-user budget for the statistics routes,
// which read the user's whole history on a cache miss. It must run after Auth.
func RateLimitStats(rate int) gin.HandlerFunc {
	return rateLimitMiddleware(NewRateLimiter(rate, time.Minute, "stats"))
}

// clientKey prefers the authenticated user so clients behind one NAT do not
// share a budget
func clientKey(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}

func rateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c)
		remaining, reset, ok := limiter.take(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ok {
			c.Next()
			return
		}

		logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
			logger.String("limiter", limiter.name),
			logger.String("client", key),
			logger.Int("limit", limiter.limit),
		)
		RateLimitedTotal.WithLabelValues(limiter.name).Inc()

		retryAfter := int(math.Ceil(reset.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
		c.Abort()
	}
}
