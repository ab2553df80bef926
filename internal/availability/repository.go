package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Source supplies availability snapshots for a service over a date range.
type Source interface {
	FetchAvailability(ctx context.Context, serviceID string, r Range) ([]Record, error)
}

// ContractedSource supplies the guest's own existing purchases of a service.
// The date range is expanded to full-day timestamp bounds on the wire.
type ContractedSource interface {
	FetchContracted(ctx context.Context, guestID, serviceID string, r Range) ([]ContractedService, error)
}

type pgxSource struct {
	pool *pgxpool.Pool
}

// NewPgxSource reads availability from the operations database replica.
// Used when the resolver is co-deployed with the backend database; otherwise
// the HTTP client source talks to the backend REST API.
func NewPgxSource(pool *pgxpool.Pool) Source {
	return &pgxSource{pool: pool}
}

func (s *pgxSource) FetchAvailability(ctx context.Context, serviceID string, r Range) ([]Record, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"date", "start_time", "coalesce(end_time, '')", "is_fixed_duration", "remaining_capacity",
	).
		From("public.service_availability").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"date": r.From}).
		Where(squirrel.LtOrEq{"date": r.To}).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build availability query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapSourceErr("fetch availability", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Date, &rec.StartTime, &rec.EndTime, &rec.FixedDuration, &rec.RemainingCapacity); err != nil {
			return nil, fmt.Errorf("scan availability record failed: %w", err)
		}
		rec.Date = DateOnly(rec.Date)
		records = append(records, rec)
	}
	return records, rows.Err()
}

type pgxContractedSource struct {
	pool *pgxpool.Pool
}

// NewPgxContractedSource reads the guest's contracted services from the
// operations database replica.
func NewPgxContractedSource(pool *pgxpool.Pool) ContractedSource {
	return &pgxContractedSource{pool: pool}
}

func (s *pgxContractedSource) FetchContracted(ctx context.Context, guestID, serviceID string, r Range) ([]ContractedService, error) {
	from, to := r.TimestampBounds()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("service_datetime", "quantity").
		From("public.contracted_services").
		Where(squirrel.Eq{"guest_id": guestID, "service_id": serviceID}).
		Where(squirrel.GtOrEq{"service_datetime": from}).
		Where(squirrel.LtOrEq{"service_datetime": to}).
		OrderBy("service_datetime ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build contracted query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapSourceErr("fetch contracted services", err)
	}
	defer rows.Close()

	var contracted []ContractedService
	for rows.Next() {
		var c ContractedService
		if err := rows.Scan(&c.ServiceDateTime, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan contracted service failed: %w", err)
		}
		contracted = append(contracted, c)
	}
	return contracted, rows.Err()
}

// TimestampBounds expands the inclusive date range into full-day timestamp
// bounds (00:00:00 through 23:59:59 UTC) for querying timestamped records.
func (r Range) TimestampBounds() (time.Time, time.Time) {
	from := DateOnly(r.From)
	to := DateOnly(r.To).Add(24*time.Hour - time.Second)
	return from, to
}

func wrapSourceErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsConnectionException(pgErr.Code) {
		return fmt.Errorf("%s: %w: %w", op, ErrSourceUnavailable, err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
