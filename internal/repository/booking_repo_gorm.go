package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/milkrun/internal/domain"
	"gorm.io/gorm"
)

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	row := bookingRow{
		BookingRef:       booking.Ref,
		OutboundFlightID: booking.OutboundFlightID,
		InboundFlightID:  booking.InboundFlightID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRef
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	booking.ID = row.ID
	return nil
}

func (r *GormBookingRepository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	var row bookingRow
	if err := r.db.WithContext(ctx).Where("booking_ref = ?", ref).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &domain.Booking{
		ID:               row.ID,
		Ref:              row.BookingRef,
		OutboundFlightID: row.OutboundFlightID,
		InboundFlightID:  row.InboundFlightID,
	}, nil
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	row := customerRow{
		FirstName:          customer.FirstName,
		LastName:           customer.LastName,
		CustomerBookingRef: customer.BookingRef,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	customer.ID = row.ID
	return nil
}

func (r *GormCustomerRepository) ListByBookingRef(ctx context.Context, ref string) ([]domain.Customer, error) {
	var rows []customerRow
	if err := r.db.WithContext(ctx).Where("customer_booking_ref = ?", ref).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, domain.Customer{
			ID:         row.ID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			BookingRef: row.CustomerBookingRef,
		})
	}
	return customers, nil
}

var (
	_ BookingRepository  = (*GormBookingRepository)(nil)
	_ CustomerRepository = (*GormCustomerRepository)(nil)
)
