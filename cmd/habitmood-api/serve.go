package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/cache"
	"github.com/JonnyWalker81/habitmood/backend/internal/config"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/internal/repository"
	"github.com/JonnyWalker81/habitmood/backend/internal/service"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

const shutdownTimeout = 10 * time.Second

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func newLogger(cfg *config.Config) logger.Logger {
	lc := logger.DefaultConfig()
	lc.Level = logger.ParseLevel(cfg.Log.Level)
	lc.Format = cfg.Log.Format
	lc.File = cfg.Log.File
	return logger.NewSlogLogger(lc)
}

// newCache picks Redis when configured so replicas share results
func newCache(ctx context.Context, cfg *config.Config, log logger.Logger) (cache.Cache, func(), error) {
	if cfg.Cache.RedisURL == "" {
		log.Info("using in-process stats cache", logger.Duration("ttl", cfg.Cache.TTL))
		return cache.NewMemory(cfg.Cache.TTL), func() {}, nil
	}

	rc, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using redis stats cache", logger.Duration("ttl", cfg.Cache.TTL))
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn("failed to close redis", logger.Err(err))
		}
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := newLogger(cfg)
	logger.SetDefault(log)

	log.Info("starting habitmood API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statsCache, closeCache, err := newCache(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer closeCache()

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Timeout)

	// Initialize repositories
	habitRepo := repository.NewHabitRepository(supabaseClient)
	logRepo := repository.NewLogRepository(supabaseClient)
	moodRepo := repository.NewMoodRepository(supabaseClient)

	// Initialize services
	svc := services{
		habits: service.NewHabitService(habitRepo, statsCache),
		logs:   service.NewLogService(logRepo, habitRepo, statsCache),
		moods:  service.NewMoodService(moodRepo, statsCache),
		stats: service.NewStatsService(habitRepo, logRepo, moodRepo, statsCache, service.StatsOptions{
			MinSamples: cfg.Stats.MinCorrelationSamples,
			TopN:       cfg.Stats.InsightTopN,
			WindowDays: cfg.Stats.CorrelationWindowDays,
		}),
		system:   service.NewSystemService(supabaseClient),
		verifier: supabaseClient,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(cfg, log, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info("server stopped")
	return nil
}
