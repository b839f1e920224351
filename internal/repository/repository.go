package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/milkrun/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateRef = errors.New("booking reference already exists")
)

const defaultBatchSize = 500

type FlightRepository interface {
	// InsertBatch stores the flights and sets their IDs in place.
	InsertBatch(ctx context.Context, flights []domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
	ListByRoute(ctx context.Context, originCode, destCode string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	// ReplaceAll empties all three tables and stores the flights in one
	// transaction. On error the previous contents are kept.
	ReplaceAll(ctx context.Context, flights []domain.Flight) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	ListByBookingRef(ctx context.Context, ref string) ([]domain.Customer, error)
}
