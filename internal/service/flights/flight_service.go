package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/milkrun/internal/domain"
	"github.com/Domenick1991/milkrun/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Route(ctx context.Context, query RouteQuery) ([]domain.Flight, error)
	Refresh(ctx context.Context) (int, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// RouteQuery selects flights between two airports leaving in [From, To).
// Zero bounds are open.
type RouteQuery struct {
	OriginCode      string
	DestinationCode string
	From            time.Time
	To              time.Time
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   *zap.SugaredLogger
}

// NewFlightService accepts a nil cache.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, log *zap.SugaredLogger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.Warnw("flight cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warnw("flight cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Route(ctx context.Context, query RouteQuery) ([]domain.Flight, error) {
	origin, err := domain.LookupAirport(query.OriginCode)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	dest, err := domain.LookupAirport(query.DestinationCode)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	// without a cache the database filters by route
	var candidates []domain.Flight
	if s.cache != nil {
		candidates, err = s.List(ctx)
	} else {
		candidates, err = s.repo.ListByRoute(ctx, origin.Code, dest.Code)
	}
	if err != nil {
		return nil, err
	}

	route := make([]domain.Flight, 0)
	for _, f := range candidates {
		if f.OriginCode != origin.Code || f.DestinationCode != dest.Code {
			continue
		}
		if !query.From.IsZero() && f.LeaveAt.Before(query.From) {
			continue
		}
		if !query.To.IsZero() && !f.LeaveAt.Before(query.To) {
			continue
		}
		route = append(route, f)
	}
	return route, nil
}

// Refresh drops the cached list and loads it again from the repository.
func (s *FlightService) Refresh(ctx context.Context) (int, error) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			return 0, fmt.Errorf("invalidate flight cache: %w", err)
		}
	}
	flights, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(flights), nil
}

var _ FlightUseCase = (*FlightService)(nil)
