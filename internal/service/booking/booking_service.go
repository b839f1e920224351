package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/milkrun/internal/domain"
	"github.com/Domenick1991/milkrun/internal/repository"
	"go.uber.org/zap"
)

var ErrInvalidReturn = errors.New("inbound flight does not return from the outbound destination")

const maxRefAttempts = 5

type BookingUseCase interface {
	CreateBooking(ctx context.Context, outboundID, inboundID int64) (*domain.Booking, error)
	AddCustomer(ctx context.Context, ref, firstName, lastName string) (*domain.Customer, error)
	GetBooking(ctx context.Context, ref string) (*BookingDetails, error)
}

type BookingDetails struct {
	Booking   domain.Booking    `json:"booking"`
	Outbound  domain.Flight     `json:"outbound"`
	Inbound   domain.Flight     `json:"inbound"`
	Customers []domain.Customer `json:"customers"`
}

type BookingService struct {
	flights   repository.FlightRepository
	bookings  repository.BookingRepository
	customers repository.CustomerRepository
	log       *zap.SugaredLogger
	newRef    func() (string, error)
}

type Option func(*BookingService)

// WithRefGenerator replaces the random booking reference source.
func WithRefGenerator(fn func() (string, error)) Option {
	return func(s *BookingService) {
		s.newRef = fn
	}
}

func NewBookingService(
	flights repository.FlightRepository,
	bookings repository.BookingRepository,
	customers repository.CustomerRepository,
	log *zap.SugaredLogger,
	opts ...Option,
) *BookingService {
	s := &BookingService{
		flights:   flights,
		bookings:  bookings,
		customers: customers,
		log:       log,
		newRef:    domain.GenerateBookingRef,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookingService) CreateBooking(ctx context.Context, outboundID, inboundID int64) (*domain.Booking, error) {
	outbound, err := s.flights.GetByID(ctx, outboundID)
	if err != nil {
		return nil, fmt.Errorf("outbound flight %d: %w", outboundID, err)
	}
	inbound, err := s.flights.GetByID(ctx, inboundID)
	if err != nil {
		return nil, fmt.Errorf("inbound flight %d: %w", inboundID, err)
	}
	if err := checkReturn(outbound, inbound); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxRefAttempts; attempt++ {
		ref, err := s.newRef()
		if err != nil {
			return nil, fmt.Errorf("generate booking ref: %w", err)
		}
		b, err := domain.NewBooking(ref, outbound.ID, inbound.ID)
		if err != nil {
			return nil, err
		}

		err = s.bookings.Create(ctx, &b)
		if errors.Is(err, repository.ErrDuplicateRef) {
			s.log.Debugw("booking ref collision", "ref", ref, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}

		s.log.Infow("booking created", "ref", b.Ref, "outbound", outbound.ID, "inbound", inbound.ID)
		return &b, nil
	}
	return nil, fmt.Errorf("no free booking ref after %d attempts: %w", maxRefAttempts, repository.ErrDuplicateRef)
}

func checkReturn(outbound, inbound *domain.Flight) error {
	if inbound.OriginCode != outbound.DestinationCode || inbound.DestinationCode != outbound.OriginCode {
		return fmt.Errorf("%w: %s-%s then %s-%s", ErrInvalidReturn,
			outbound.OriginCode, outbound.DestinationCode, inbound.OriginCode, inbound.DestinationCode)
	}
	if !inbound.LeaveAt.After(outbound.ArriveAt) {
		return fmt.Errorf("%w: inbound leaves before outbound arrives", ErrInvalidReturn)
	}
	return nil
}

func (s *BookingService) AddCustomer(ctx context.Context, ref, firstName, lastName string) (*domain.Customer, error) {
	c, err := domain.NewCustomer(firstName, lastName, ref)
	if err != nil {
		return nil, err
	}
	if _, err := s.bookings.GetByRef(ctx, ref); err != nil {
		return nil, fmt.Errorf("booking %s: %w", ref, err)
	}
	if err := s.customers.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &c, nil
}

func (s *BookingService) GetBooking(ctx context.Context, ref string) (*BookingDetails, error) {
	if err := domain.ValidateBookingRef(ref); err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", ref, err)
	}
	outbound, err := s.flights.GetByID(ctx, b.OutboundFlightID)
	if err != nil {
		return nil, fmt.Errorf("outbound flight %d: %w", b.OutboundFlightID, err)
	}
	inbound, err := s.flights.GetByID(ctx, b.InboundFlightID)
	if err != nil {
		return nil, fmt.Errorf("inbound flight %d: %w", b.InboundFlightID, err)
	}
	customers, err := s.customers.ListByBookingRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("customers for %s: %w", ref, err)
	}

	return &BookingDetails{
		Booking:   *b,
		Outbound:  *outbound,
		Inbound:   *inbound,
		Customers: customers,
	}, nil
}

var _ BookingUseCase = (*BookingService)(nil)
