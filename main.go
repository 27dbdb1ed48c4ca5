package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"irispredict/artifact"
	"irispredict/config"
	qhttp "irispredict/http"
	"irispredict/logging"
	"irispredict/ui"
)

func main() {
	// 1. Load config
	cfg, configPath, err := config.Resolve("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    cfg.Log.Console,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if configPath == "" {
		logger.Warn("config.yaml not found, using defaults")
	} else {
		logger.Info("config loaded", zap.String("path", configPath))
	}

	// 3. Load artifacts; failures degrade the page instead of stopping the process
	presenter, err := loadPresenter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build presenter", zap.Error(err))
	}

	// 4. Start HTTP server
	handler := qhttp.NewHandler(presenter, logger, cfg.UI.Locale)
	server := qhttp.NewServer(qhttp.ServerConfig{Port: cfg.Http.Port, Timeout: cfg.Http.Timeout}, handler)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

func loadPresenter(cfg *config.Config, logger *zap.Logger) (*ui.Presenter, error) {
	var issues []ui.LoadIssue

	classifier, err := artifact.LoadClassifier(cfg.Artifacts.ModelPath)
	if err != nil {
		logger.Error("classifier not loaded, predictions disabled", zap.String("path", cfg.Artifacts.ModelPath), zap.Error(err))
		issues = append(issues, ui.LoadIssue{Artifact: ui.ModelArtifact, Err: err})
	} else {
		logger.Info("classifier loaded", zap.String("path", cfg.Artifacts.ModelPath), zap.Int("classes", classifier.NumClasses()))
	}

	cache, err := artifact.NewClassNameCache(1)
	if err != nil {
		return nil, err
	}
	// Warm the cache now so load failures are logged once at startup; the
	// presenter reads the same entry on every render.
	classNames, err := cache.Get(cfg.Artifacts.ClassNamesPath)
	if err != nil {
		logger.Error("class names not loaded, using placeholders", zap.String("path", cfg.Artifacts.ClassNamesPath), zap.Error(err))
	}

	if err := artifact.CheckAlignment(classifier, classNames); err != nil {
		logger.Warn("class names do not match classifier output", zap.Error(err))
	}

	return ui.NewCachedPresenter(classifier, cache, cfg.Artifacts.ClassNamesPath, issues...)
}
