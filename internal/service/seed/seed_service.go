package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/milkrun/internal/kafka"
	"github.com/Domenick1991/milkrun/internal/repository"
	"github.com/Domenick1991/milkrun/internal/schedule"
	"go.uber.org/zap"
)

type Generator interface {
	Generate() (*schedule.Timetable, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Report struct {
	Counts    schedule.Counts
	Year      int
	Persisted bool
}

type SeedService struct {
	generator Generator
	flights   repository.FlightRepository
	cache     Cache
	producer  Producer
	topic     string
	reset     bool
	now       func() time.Time
	log       *zap.SugaredLogger
}

type SeedServiceOption func(*SeedService)

func WithCache(cache Cache) SeedServiceOption {
	return func(s *SeedService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) SeedServiceOption {
	return func(s *SeedService) {
		s.producer = producer
		s.topic = topic
	}
}

// WithReset replaces the table contents instead of appending. The reset and
// the insert commit together.
func WithReset(reset bool) SeedServiceOption {
	return func(s *SeedService) {
		s.reset = reset
	}
}

func WithClock(now func() time.Time) SeedServiceOption {
	return func(s *SeedService) {
		s.now = now
	}
}

// NewSeedService accepts a nil flights repository for dry runs.
func NewSeedService(generator Generator, flights repository.FlightRepository, log *zap.SugaredLogger, opts ...SeedServiceOption) *SeedService {
	s := &SeedService{
		generator: generator,
		flights:   flights,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DryRun generates the timetable and reports its size without writing.
func (s *SeedService) DryRun() (*Report, error) {
	tt, err := s.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate timetable: %w", err)
	}
	report := newReport(tt)
	s.logCounts(report)
	return report, nil
}

// Seed writes a freshly generated timetable. Cache and event failures are
// logged; the rows are already committed by then.
func (s *SeedService) Seed(ctx context.Context) (*Report, error) {
	if s.flights == nil {
		return nil, fmt.Errorf("seed: no flight repository configured")
	}

	tt, err := s.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate timetable: %w", err)
	}
	report := newReport(tt)
	s.logCounts(report)

	store := s.flights.InsertBatch
	if s.reset {
		store = s.flights.ReplaceAll
	}
	if err := store(ctx, tt.All()); err != nil {
		return nil, err
	}
	report.Persisted = true
	s.log.Infow("flights stored", "count", report.Counts.Total, "reset", s.reset)

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warnw("failed to invalidate flight cache", "error", err)
		}
	}

	if s.producer != nil && s.topic != "" {
		event := kafka.NewScheduleSeeded(report.Year, report.Counts.Outbound, report.Counts.Inbound, s.now())
		if err := s.producer.Publish(ctx, s.topic, event.ID, event); err != nil {
			s.log.Warnw("failed to publish schedule event", "topic", s.topic, "error", err)
		}
	}

	return report, nil
}

func (s *SeedService) logCounts(r *Report) {
	s.log.Infow("generated flights",
		"year", r.Year,
		"outbound", r.Counts.Outbound,
		"inbound", r.Counts.Inbound,
		"both", r.Counts.Total,
	)
}

func newReport(tt *schedule.Timetable) *Report {
	report := &Report{Counts: tt.Counts()}
	if all := tt.All(); len(all) > 0 {
		report.Year = all[0].LeaveAt.Year()
	}
	return report
}
