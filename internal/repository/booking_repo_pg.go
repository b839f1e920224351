package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/milkrun/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PGBookingRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

func (r *PGBookingRepository) insertQuery(b *domain.Booking) sq.InsertBuilder {
	return r.sb.Insert("booking").
		Columns("booking_ref", "outbound_flight_id", "inbound_flight_id").
		Values(b.Ref, b.OutboundFlightID, b.InboundFlightID).
		Suffix("RETURNING id")
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	sqlStr, args, err := r.insertQuery(booking).ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking sql: %w", err)
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&booking.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateRef
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	sqlStr, args, err := r.sb.
		Select("id", "booking_ref", "outbound_flight_id", "inbound_flight_id").
		From("booking").
		Where(sq.Eq{"booking_ref": ref}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking sql: %w", err)
	}

	var b domain.Booking
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&b.ID, &b.Ref, &b.OutboundFlightID, &b.InboundFlightID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
