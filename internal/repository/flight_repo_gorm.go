package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/milkrun/internal/domain"
	"gorm.io/gorm"
)

type GormFlightRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewGormFlightRepository(db *gorm.DB, batchSize int) FlightRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &GormFlightRepository{db: db, batchSize: batchSize}
}

func (r *GormFlightRepository) InsertBatch(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	return r.insert(r.db.WithContext(ctx), flights)
}

func (r *GormFlightRepository) ReplaceAll(ctx context.Context, flights []domain.Flight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&customerRow{}, &bookingRow{}, &flightRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("reset tables: %w", err)
			}
		}
		if len(flights) == 0 {
			return nil
		}
		return r.insert(tx, flights)
	})
}

func (r *GormFlightRepository) insert(db *gorm.DB, flights []domain.Flight) error {
	rows := make([]flightRow, len(flights))
	for i, f := range flights {
		rows[i] = toFlightRow(f)
	}

	if err := db.CreateInBatches(rows, r.batchSize).Error; err != nil {
		return fmt.Errorf("insert flights: %w", err)
	}
	for i := range rows {
		flights[i].ID = rows[i].ID
	}
	return nil
}

func (r *GormFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	var rows []flightRow
	if err := r.db.WithContext(ctx).Order("leave_dt, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flightRowsToDomain(rows), nil
}

func (r *GormFlightRepository) ListByRoute(ctx context.Context, originCode, destCode string) ([]domain.Flight, error) {
	var rows []flightRow
	err := r.db.WithContext(ctx).
		Where("origin_code = ? AND dest_code = ?", originCode, destCode).
		Order("leave_dt, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list flights by route: %w", err)
	}
	return flightRowsToDomain(rows), nil
}

func (r *GormFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var row flightRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flight: %w", err)
	}
	f := row.toDomain()
	return &f, nil
}

func flightRowsToDomain(rows []flightRow) []domain.Flight {
	flights := make([]domain.Flight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, row.toDomain())
	}
	return flights
}

var _ FlightRepository = (*GormFlightRepository)(nil)
