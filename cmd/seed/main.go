package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/milkrun/config"
	"github.com/Domenick1991/milkrun/internal/cache"
	"github.com/Domenick1991/milkrun/internal/kafka"
	"github.com/Domenick1991/milkrun/internal/logging"
	"github.com/Domenick1991/milkrun/internal/repository"
	"github.com/Domenick1991/milkrun/internal/schedule"
	"github.com/Domenick1991/milkrun/internal/service/seed"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "generate the timetable and print counts without writing")
	flag.Parse()

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Must(cfg.App.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	genOpts := []schedule.Option{schedule.WithoutServices(cfg.Schedule.SkipServices...)}
	start, _ := cfg.Schedule.Start()
	if !start.IsZero() {
		genOpts = append(genOpts, schedule.WithStartDate(start))
	}
	generator := schedule.NewGenerator(genOpts...)

	if *dryRun {
		if _, err := seed.NewSeedService(generator, nil, logger).DryRun(); err != nil {
			logger.Fatalw("dry run failed", "error", err)
		}
		return
	}

	store, err := repository.Open(ctx, cfg.Database, cfg.Seed.BatchSize)
	if err != nil {
		logger.Fatalw("open database", "driver", cfg.Database.Driver, "error", err)
	}
	defer store.Close()

	opts := []seed.SeedServiceOption{seed.WithReset(cfg.Seed.Reset)}
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		opts = append(opts, seed.WithCache(redisCache))
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		opts = append(opts, seed.WithProducer(producer, cfg.Kafka.ScheduleTopic))
	}

	report, err := seed.NewSeedService(generator, store.Flights, logger, opts...).Seed(ctx)
	if err != nil {
		logger.Fatalw("seed failed", "error", err)
	}
	logger.Infow("seed finished", "year", report.Year, "total", report.Counts.Total)
}
