// ABOUTME: Main entry point for the Competitor Monitor API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"competitor-monitor-api/api"
	"competitor-monitor-api/api/middleware"
	"competitor-monitor-api/core/analysis"
	"competitor-monitor-api/core/fetcher"
	"competitor-monitor-api/core/history"
	"competitor-monitor-api/core/interfaces"
	"competitor-monitor-api/core/pipeline"
	"competitor-monitor-api/core/workers"
	"competitor-monitor-api/infrastructure/browser/rod"
	"competitor-monitor-api/infrastructure/browser/static"
	"competitor-monitor-api/infrastructure/cache/memory"
	"competitor-monitor-api/infrastructure/cache/redis"
	"competitor-monitor-api/infrastructure/cache/sqlite"
	stdhttp "competitor-monitor-api/infrastructure/http/standard"
	"competitor-monitor-api/infrastructure/llm/openai"
	logruslogger "competitor-monitor-api/infrastructure/logger/logrus"
	"competitor-monitor-api/infrastructure/storage/jsonfile"
	"competitor-monitor-api/pkg/config"
	"competitor-monitor-api/pkg/featureflags"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.New(logruslogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	logger.Info("Starting Competitor Monitor API", map[string]interface{}{
		"address":    cfg.Server.Addr(),
		"engine":     cfg.Parser.Engine,
		"cache_type": cfg.Cache.Type,
		"text_model": cfg.Model.TextModel,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logger.Info("Server stopped", nil)
}

// run builds the component graph and serves until SIGINT or SIGTERM
func run(cfg *config.Config, logger interfaces.Logger) error {
	flags := featureflags.NewEnvManager("FEATURE_")
	flagFields := make(map[string]interface{})
	for flag, on := range flags.GetAllFlags() {
		flagFields[string(flag)] = on
	}
	logger.Info("Feature flags", flagFields)

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Parser.PageLoadTimeout, stdhttp.WithUserAgent(cfg.Parser.UserAgent)),
		Logger:     logger,
	}

	pool := workers.NewBrowserPool(newPageSource(cfg, deps, flags), logger, workers.PoolConfig{
		MaxWorkers: cfg.Parser.Workers,
		QueueSize:  cfg.Parser.QueueSize,
	})
	if err := pool.Start(); err != nil {
		return fmt.Errorf("start browser pool: %w", err)
	}
	defer pool.Stop()

	completer := openai.NewClient(openai.Config{
		APIKey:     cfg.Model.APIKey,
		BaseURL:    cfg.Model.BaseURL,
		MaxRetries: cfg.Model.MaxRetries,
		Timeout:    cfg.Model.Timeout,
		HTTPClient: &http.Client{
			Transport: &middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger},
		},
	})

	analyzer, err := analysis.NewService(completer, logger, analysis.Config{
		TextModel:   cfg.Model.TextModel,
		VisionModel: cfg.Model.VisionModel,
		Language:    cfg.Model.Language,
	})
	if err != nil {
		return fmt.Errorf("create analyzer: %w", err)
	}

	storage := jsonfile.New(cfg.History.File)
	if err := storage.EnsureFile(); err != nil {
		logger.Warn("Could not create history file", map[string]interface{}{
			"path":  storage.Path(),
			"error": err.Error(),
		})
	}

	service := pipeline.NewService(pipeline.Dependencies{
		Analyzer: analyzer,
		Pages:    pool,
		History:  history.NewService(storage, logger, cfg.History.MaxItems),
		Logger:   logger,
		Flags:    flags,
	})

	server := api.NewServer(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.RateLimit.Requests,
		RateWindow: cfg.RateLimit.Window,
		Flags:      flags,
	}, service)
	defer server.Close()

	// Site analysis can take the page timeout, the settle delay and a vision
	// call, so the write timeout is generous
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newPageSource selects the browser engine and layers the page cache on top
func newPageSource(cfg *config.Config, deps interfaces.Dependencies, flags featureflags.Manager) interfaces.PageSource {
	var launcher interfaces.BrowserLauncher
	switch cfg.Parser.Engine {
	case "static":
		launcher = static.NewLauncher(deps.HTTPClient)
	default:
		launcher = rod.NewLauncher(cfg.Parser.BrowserBin)
	}

	var source interfaces.PageSource = fetcher.NewFetcher(launcher, deps.Logger, fetcher.Config{
		PageLoadTimeout: cfg.Parser.PageLoadTimeout,
		SettleDelay:     cfg.Parser.SettleDelay,
		UserAgent:       cfg.Parser.UserAgent,
		ViewportWidth:   fetcher.DefaultViewportWidth,
		ViewportHeight:  fetcher.DefaultViewportHeight,
		NoSandbox:       true,
	})

	if deps.Cache != nil && cfg.Parser.PageCacheTTL > 0 && flags.IsEnabled(context.Background(), featureflags.PageCacheEnabled) {
		source = fetcher.NewCachedSource(source, deps.Cache, cfg.Parser.PageCacheTTL, deps.Logger)
	}
	return source
}

// newCache creates the configured page cache, falling back to memory
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), noop
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, closer(redisCache, logger)
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), noop
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache, closer(sqliteCache, logger)
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), noop
	}
}

func closer(c io.Closer, logger interfaces.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
