package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/milkrun/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var flightColumns = []string{
	"seats",
	"origin",
	"dest",
	"origin_code",
	"dest_code",
	"leave_dt",
	"arrival_dt",
	"operator",
	"aircraft_model",
	"stopover",
}

type PGFlightRepository struct {
	db        *pgxpool.Pool
	sb        sq.StatementBuilderType
	batchSize int
}

// maxPGBatchSize keeps one multi-row insert under the 65535 bind parameter
// limit of the postgres protocol.
var maxPGBatchSize = 65535 / len(flightColumns)

func NewFlightRepository(db *pgxpool.Pool, batchSize int) FlightRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	batchSize = min(batchSize, maxPGBatchSize)
	return &PGFlightRepository{
		db:        db,
		sb:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		batchSize: batchSize,
	}
}

func (r *PGFlightRepository) InsertBatch(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return r.insertChunks(ctx, tx, flights)
	})
}

func (r *PGFlightRepository) ReplaceAll(ctx context.Context, flights []domain.Flight) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, truncateSQL); err != nil {
			return fmt.Errorf("reset tables: %w", err)
		}
		return r.insertChunks(ctx, tx, flights)
	})
}

const truncateSQL = `TRUNCATE customer, booking, flight RESTART IDENTITY`

func (r *PGFlightRepository) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin flights tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) insertChunks(ctx context.Context, tx pgx.Tx, flights []domain.Flight) error {
	for start := 0; start < len(flights); start += r.batchSize {
		end := min(start+r.batchSize, len(flights))
		chunk := flights[start:end]

		sqlStr, args, err := r.insertQuery(chunk).ToSql()
		if err != nil {
			return fmt.Errorf("build insert flights sql: %w", err)
		}

		rows, err := tx.Query(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("insert flights: %w", err)
		}
		i := 0
		for rows.Next() {
			if err := rows.Scan(&chunk[i].ID); err != nil {
				rows.Close()
				return fmt.Errorf("scan flight id: %w", err)
			}
			i++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("insert flights: %w", err)
		}
	}
	return nil
}

func (r *PGFlightRepository) insertQuery(flights []domain.Flight) sq.InsertBuilder {
	q := r.sb.Insert("flight").Columns(flightColumns...).Suffix("RETURNING id")
	for _, f := range flights {
		q = q.Values(
			f.Seats,
			f.Origin,
			f.Destination,
			f.OriginCode,
			f.DestinationCode,
			f.LeaveAt,
			f.ArriveAt,
			f.Operator,
			f.AircraftModel,
			f.Stopover,
		)
	}
	return q
}

func (r *PGFlightRepository) selectQuery() sq.SelectBuilder {
	return r.sb.Select(append([]string{"id"}, flightColumns...)...).From("flight")
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.query(ctx, r.selectQuery().OrderBy("leave_dt", "id"))
}

func (r *PGFlightRepository) ListByRoute(ctx context.Context, originCode, destCode string) ([]domain.Flight, error) {
	return r.query(ctx, r.routeQuery(originCode, destCode))
}

func (r *PGFlightRepository) routeQuery(originCode, destCode string) sq.SelectBuilder {
	return r.selectQuery().
		Where(sq.Eq{"origin_code": originCode, "dest_code": destCode}).
		OrderBy("leave_dt", "id")
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	sqlStr, args, err := r.selectQuery().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get flight sql: %w", err)
	}

	f, err := scanFlight(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flight: %w", err)
	}
	return &f, nil
}

func (r *PGFlightRepository) query(ctx context.Context, q sq.SelectBuilder) ([]domain.Flight, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list flights sql: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner) (domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(
		&f.ID,
		&f.Seats,
		&f.Origin,
		&f.Destination,
		&f.OriginCode,
		&f.DestinationCode,
		&f.LeaveAt,
		&f.ArriveAt,
		&f.Operator,
		&f.AircraftModel,
		&f.Stopover,
	)
	return f, err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
