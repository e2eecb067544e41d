package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"press-lens/cmd/internal/bootstrap"
	"press-lens/cmd/processor/handlers"
	"press-lens/config"
	"press-lens/db"
	"press-lens/eventbus"
	"press-lens/events"
	"press-lens/logger"
	"press-lens/repositories"
	"press-lens/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromLevel(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB 초기화
	if err := db.Init(ctx, cfg.Mongo); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer func() { _ = db.Disconnect(context.Background()) }()

	// EventBus 초기화 및 토픽 보장
	brokers := cfg.Kafka.Brokers
	if brokers == "" {
		logger.Log.Error("kafka.brokers (KAFKA_BOOTSTRAP_SERVERS) is not configured")
		os.Exit(1)
	}
	for _, t := range eventbus.AllTopics {
		if err := eventbus.EnsureTopics(ctx, brokers, t, 3); err != nil {
			logger.Log.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	// 서비스 초기화
	analysis, err := bootstrap.NewAnalysisService(ctx, cfg, bootstrap.NewFetcher(cfg))
	if err != nil {
		logger.Log.Errorf("failed to initialize analysis service: %v", err)
		os.Exit(1)
	}
	jobs := services.NewJobService(repositories.NewAnalysisRepository(db.Database()), bus, analysis, "processor")
	eventHandler := handlers.NewEventHandlers(jobs)

	logger.Log.Info("starting processor service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// 메인 구독 시작
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := eventbus.SubscribeJSON[events.AnalysisRequestedEvent](ctx, bus, cfg.Kafka.GroupID, eventbus.TopicAnalysisRequests, eventHandler.HandleAnalysisRequested)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Errorf("eventbus subscribe error: %v", err)
		}
	}()

	// 종료 신호 대기
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down processor service...")

	cancel()
	wg.Wait()

	logger.Log.Info("processor service stopped")
}
