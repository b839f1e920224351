package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/milkrun/config"
	"github.com/Domenick1991/milkrun/internal/bootstrap"
	"github.com/Domenick1991/milkrun/internal/cache"
	"github.com/Domenick1991/milkrun/internal/kafka"
	"github.com/Domenick1991/milkrun/internal/logging"
	"github.com/Domenick1991/milkrun/internal/repository"
	"github.com/Domenick1991/milkrun/internal/service/flights"
)

func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Must(cfg.App.Env)
	defer logger.Sync()

	if !cfg.Redis.Enabled() {
		logger.Fatal("worker needs redis.addr, it only maintains the flight cache")
	}
	if !cfg.Kafka.Enabled() && cfg.Worker.RefreshInterval() == 0 {
		logger.Fatal("worker needs kafka or worker.refresh_minutes, otherwise it has nothing to do")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, cfg.Seed.BatchSize)
	if err != nil {
		logger.Fatalw("open database", "driver", cfg.Database.Driver, "error", err)
	}
	defer store.Close()

	redisCache := cache.NewRedisCache(cfg.Redis)
	defer redisCache.Close()

	flightService := flights.NewFlightService(store.Flights, redisCache, logger)

	var consumer bootstrap.ScheduleConsumer
	if cfg.Kafka.Enabled() {
		c := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ScheduleTopic, logger)
		defer c.Close()
		consumer = c
	} else {
		logger.Warn("kafka not configured, refreshing on the interval only")
	}

	worker := bootstrap.NewWorker(consumer, flightService, cfg.Worker.RefreshInterval(), logger)

	logger.Infow("worker started", "refresh_interval", cfg.Worker.RefreshInterval().String())
	if err := worker.Run(ctx); err != nil {
		logger.Fatalw("worker stopped", "error", err)
	}
	logger.Info("worker stopped")
}
