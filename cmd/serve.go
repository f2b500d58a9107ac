package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"finlear/config"
	httpLayer "finlear/http"
	"finlear/repository"
	"finlear/service"
)

const calculationHistoryLimit = 1000

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("db") {
				cfg.DBPath, _ = flags.GetString("db")
			}
			if flags.Changed("redis") {
				cfg.RedisAddr, _ = flags.GetString("redis")
			}
			if flags.Changed("log-level") {
				cfg.LogLevel, _ = flags.GetString("log-level")
			}

			logger := NewLogger(os.Stderr, cfg.LogLevel, cfg.LogJSON)
			return serve(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().String("addr", "", "listen address (FINLEAR_ADDR)")
	cmd.Flags().String("db", "", "SQLite database path (FINLEAR_DB_PATH)")
	cmd.Flags().String("redis", "", "Redis address; empty uses an in-process cache (REDIS_ADDR)")
	cmd.Flags().String("log-level", "", "log level (LOG_LEVEL)")
	return cmd
}

// newCache picks Redis when configured and the in-process cache otherwise.
func newCache(ctx context.Context, cfg config.Config, logger log.Logger) (repository.CacheRepository, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory cache")
		return repository.NewMemoryCache(), func() {}, nil
	}

	cache, err := repository.NewRedisCache(ctx, cfg.RedisAddr, "finlear:")
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("using redis cache", "addr", cfg.RedisAddr)
	return cache, func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}, nil
}

func buildHandler(cfg config.Config, cache repository.CacheRepository, budgetRepo repository.BudgetRepository,
	limiter *httpLayer.RateLimiter, logger log.Logger,
) http.Handler {
	loanService := service.NewLoanService(logger, repository.NewLoanRepositoryMemory(calculationHistoryLimit), cfg.AssumedIncome)
	trackerService := service.NewLoanTrackerService(logger, repository.NewTrackedLoanRepositoryMemory())

	aiService := service.NewAIService(logger, service.AIConfig{
		APIKey:  cfg.AIAPIKey,
		URL:     cfg.AIGatewayURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}, cache)
	videoService := service.NewVideoService(logger, cfg.YouTubeAPIKey, "", cache)

	budgetService := service.NewBudgetService(logger, budgetRepo, aiService)
	learningService := service.NewLearningService(
		logger,
		repository.NewCacheStateStore(cache),
		aiService,
		aiService,
		videoService,
	)

	return httpLayer.NewRouter(httpLayer.Handlers{
		Loan:      httpLayer.NewLoanHandler(loanService, logger),
		Term:      httpLayer.NewTermRecommendationHandler(service.NewTermRecommendationService(logger, aiService), logger),
		Payoff:    httpLayer.NewPayoffHandler(service.NewPayoffService(logger, aiService), logger),
		Tracker:   httpLayer.NewLoanTrackerHandler(trackerService, logger),
		Budget:    httpLayer.NewBudgetHandler(budgetService, logger),
		Learning:  httpLayer.NewLearningHandler(learningService, logger),
		Functions: httpLayer.NewFunctionsHandler(aiService, videoService, logger),
	}, limiter, logger)
}

func serve(ctx context.Context, cfg config.Config, logger log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var limiter *httpLayer.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = httpLayer.NewRateLimiter(cfg.RateLimit, time.Minute)
		defer limiter.Stop()
	}

	if cfg.AIAPIKey == "" {
		logger.Warn("AI gateway key not set, AI features will use fallbacks")
	}
	if cfg.YouTubeAPIKey == "" {
		logger.Warn("YouTube API key not set, chapter videos use the built-in links")
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      buildHandler(cfg, cache, repository.NewBudgetRepositorySQLite(db), limiter, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
