package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/milkrun/internal/kafka"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ScheduleConsumer interface {
	ConsumeSchedule(ctx context.Context, handler func(context.Context, kafka.ScheduleEvent) error) error
}

type CacheRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

var ErrNoWork = errors.New("worker has no consumer and no refresh interval")

// Worker keeps the flight cache in step with the stored timetable.
type Worker struct {
	consumer        ScheduleConsumer
	refresher       CacheRefresher
	refreshInterval time.Duration
	log             *zap.SugaredLogger
}

// NewWorker accepts a nil consumer when kafka is not configured. A zero
// interval disables the periodic refresh.
func NewWorker(consumer ScheduleConsumer, refresher CacheRefresher, refreshInterval time.Duration, log *zap.SugaredLogger) *Worker {
	return &Worker{
		consumer:        consumer,
		refresher:       refresher,
		refreshInterval: refreshInterval,
		log:             log,
	}
}

// Run blocks until ctx is canceled or the consumer fails.
func (w *Worker) Run(ctx context.Context) error {
	if w.consumer == nil && w.refreshInterval <= 0 {
		return ErrNoWork
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.consumer != nil {
		g.Go(func() error {
			return w.consumer.ConsumeSchedule(ctx, w.HandleScheduleEvent)
		})
	}

	if w.refreshInterval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(w.refreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					w.refresh(ctx, "interval")
				}
			}
		})
	}

	return g.Wait()
}

// HandleScheduleEvent reloads the cache after a new timetable was seeded.
// Refresh failures are logged so one bad round does not stop the consumer.
func (w *Worker) HandleScheduleEvent(ctx context.Context, event kafka.ScheduleEvent) error {
	if event.Type != kafka.EventScheduleSeeded {
		w.log.Debugw("ignoring schedule event", "id", event.ID, "type", event.Type)
		return nil
	}
	w.log.Infow("schedule seeded", "id", event.ID, "year", event.Year, "outbound", event.Outbound, "inbound", event.Inbound)
	w.refresh(ctx, "event")
	return nil
}

func (w *Worker) refresh(ctx context.Context, reason string) {
	n, err := w.refresher.Refresh(ctx)
	if err != nil {
		w.log.Errorw("flight cache refresh failed", "reason", reason, "error", err)
		return
	}
	w.log.Infow("flight cache refreshed", "reason", reason, "flights", n)
}
