package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"press-lens/config"
	"press-lens/db"
	"press-lens/eventbus"
	"press-lens/logger"
	"press-lens/repositories"
	"press-lens/services"
)

// recovery 는 processor 장애나 DLQ 이동으로 pending 에 멈춘 비동기 작업을 주기적으로 다시 발행한다.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromLevel(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx, cfg.Mongo); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer func() { _ = db.Disconnect(context.Background()) }()

	if cfg.Kafka.Brokers == "" {
		logger.Log.Error("kafka.brokers (KAFKA_BOOTSTRAP_SERVERS) is not configured")
		os.Exit(1)
	}
	bus, err := eventbus.NewKafkaEventBus(cfg.Kafka.Brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	jobs := services.NewJobService(repositories.NewAnalysisRepository(db.Database()), bus, nil, "recovery")
	rc := cfg.Recovery

	logger.Log.Infof("starting recovery service (interval=%s, stale_after=%s)", rc.Interval(), rc.StaleAfter())

	// 첫 실행은 즉시 1회 수행
	runOnce(ctx, jobs, rc)

	ticker := time.NewTicker(rc.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("recovery service stopped")
			return
		case <-ticker.C:
			runOnce(ctx, jobs, rc)
		}
	}
}

func runOnce(ctx context.Context, jobs *services.JobService, rc config.RecoveryConfig) {
	if _, _, err := jobs.RecoverPending(ctx, time.Now(), rc.StaleAfter(), rc.ExpireAfter(), rc.BatchSize); err != nil {
		logger.Log.Errorf("recovery runOnce error: %v", err)
	}
}
