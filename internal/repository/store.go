package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/milkrun/config"
)

// Store bundles the repositories of one database connection.
type Store struct {
	Flights   FlightRepository
	Bookings  BookingRepository
	Customers CustomerRepository
	closeFn   func() error
}

// Open connects with the configured driver and makes sure the schema exists.
func Open(ctx context.Context, cfg config.DatabaseConfig, batchSize int) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Flights:   NewFlightRepository(pool, batchSize),
			Bookings:  NewBookingRepository(pool),
			Customers: NewCustomerRepository(pool),
			closeFn: func() error {
				pool.Close()
				return nil
			},
		}, nil
	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		return &Store{
			Flights:   NewGormFlightRepository(db, batchSize),
			Bookings:  NewGormBookingRepository(db),
			Customers: NewGormCustomerRepository(db),
			closeFn:   sqlDB.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (s *Store) Close() error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}
