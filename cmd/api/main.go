package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"press-lens/cmd/api/router"
	"press-lens/cmd/internal/bootstrap"
	"press-lens/config"
	"press-lens/db"
	"press-lens/eventbus"
	"press-lens/feeder"
	"press-lens/logger"
	"press-lens/parser"
	"press-lens/repositories"
	"press-lens/services"
)

// @title           Press-Lens API
// @version         1.0
// @description     Media-hook analysis for Japanese press releases
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromLevel(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := router.Deps{CORSOrigins: cfg.HTTP.CORSOrigins}

	// MongoDB 는 선택 사항이다. 없으면 ai_logs 저장과 비동기 API 없이 동작한다.
	if cfg.Mongo.URI != "" {
		if err := db.Init(ctx, cfg.Mongo); err != nil {
			logger.Log.Errorf("failed to initialize MongoDB: %v", err)
			os.Exit(1)
		}
		defer func() { _ = db.Disconnect(context.Background()) }()
		deps.MongoPing = db.Ping
	}

	fetcher := bootstrap.NewFetcher(cfg)
	analysis, err := bootstrap.NewAnalysisService(ctx, cfg, fetcher)
	if err != nil {
		logger.Log.Errorf("failed to initialize analysis service: %v", err)
		os.Exit(1)
	}
	deps.Analyzer = analysis
	deps.Importer = services.NewImportService(fetcher, parser.Strategy(cfg.Importer.Parser))
	deps.Feeds = services.NewFeedService(feeder.New(cfg.Importer.FetchTimeout()), cfg.Feeds)

	if cfg.Mongo.URI != "" && cfg.Kafka.Brokers != "" {
		bus, err := eventbus.NewKafkaEventBus(cfg.Kafka.Brokers)
		if err != nil {
			logger.Log.Errorf("failed to create event bus: %v", err)
			os.Exit(1)
		}
		defer bus.Close()
		deps.Jobs = services.NewJobService(repositories.NewAnalysisRepository(db.Database()), bus, analysis, "api")
	} else {
		logger.Log.Warn("mongo or kafka is not configured, async analysis API disabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("starting api server on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("api server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("received shutdown signal, shutting down api server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("api server shutdown error: %v", err)
	}
	logger.Log.Info("api server stopped")
}
