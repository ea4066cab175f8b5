package main

import (
	"github.com/JonnyWalker81/habitmood/backend/internal/config"
	"github.com/JonnyWalker81/habitmood/backend/internal/handlers"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/middleware"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// services bundles what the HTTP layer depends on
type services struct {
	habits   service.HabitService
	logs     service.LogService
	moods    service.MoodService
	stats    service.StatsService
	system   service.SystemService
	verifier middleware.TokenVerifier
}

func newRouter(cfg *config.Config, log logger.Logger, svc services) *gin.Engine {
	handlers.RegisterValidators()

	habitHandler := handlers.NewHabitHandler(svc.habits)
	logHandler := handlers.NewLogHandler(svc.logs)
	moodHandler := handlers.NewMoodHandler(svc.moods)
	statsHandler := handlers.NewStatsHandler(svc.stats)
	systemHandler := handlers.NewSystemHandler(svc.system, cfg.Server.Env)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))

	router.GET("/health", systemHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.Server.RateLimit))
	{
		v1.GET("/system/status", systemHandler.Status)
		v1.GET("/calendar/weeks", handlers.GetCalendarWeeks)

		protected := v1.Group("")
		protected.Use(middleware.Auth(svc.verifier))
		{
			protected.GET("/habits", habitHandler.GetHabits)
			protected.POST("/habits", habitHandler.CreateHabit)
			protected.PUT("/habits/order", habitHandler.ReorderHabits)
			protected.PUT("/habits/:id", habitHandler.UpdateHabit)
			protected.DELETE("/habits/:id", habitHandler.DeleteHabit)

			protected.GET("/logs", logHandler.GetLogs)
			protected.PUT("/logs", logHandler.SetLog)
			protected.DELETE("/logs", logHandler.ClearLog)

			protected.GET("/moods", moodHandler.GetMoods)
			protected.GET("/moods/today", moodHandler.GetTodayMood)
			protected.PUT("/moods", moodHandler.LogMood)

			stats := protected.Group("/stats")
			stats.Use(middleware.RateLimitStats(cfg.Server.StatsRateLimit))
			{
				stats.GET("", statsHandler.GetStats)
				stats.GET("/mood-correlation", statsHandler.GetMoodCorrelation)
				stats.GET("/dashboard", statsHandler.GetDashboard)
			}
		}
	}

	return router
}
