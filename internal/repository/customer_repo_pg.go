package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/milkrun/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGCustomerRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PGCustomerRepository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

func (r *PGCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	sqlStr, args, err := r.sb.
		Insert("customer").
		Columns("first_name", "last_name", "customer_booking_ref").
		Values(customer.FirstName, customer.LastName, customer.BookingRef).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert customer sql: %w", err)
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&customer.ID); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *PGCustomerRepository) ListByBookingRef(ctx context.Context, ref string) ([]domain.Customer, error) {
	sqlStr, args, err := r.sb.
		Select("id", "first_name", "last_name", "customer_booking_ref").
		From("customer").
		Where(sq.Eq{"customer_booking_ref": ref}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list customers sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.BookingRef); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

var _ CustomerRepository = (*PGCustomerRepository)(nil)
