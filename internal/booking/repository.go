package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing booking data from storage.
type Repository interface {
	// Create persists a new booking and returns its full projection
	// (item and booker names joined in) within one transaction.
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// UpdateStatus writes only the status column so concurrent changes to
	// other fields are not clobbered.
	UpdateStatus(ctx context.Context, id int64, status Status) error
	ListByBooker(ctx context.Context, f ListFilter) ([]*Booking, error)
	ListByOwner(ctx context.Context, f ListFilter) ([]*Booking, error)
	ListForItem(ctx context.Context, itemID int64) ([]*Booking, error)
	// ListForItems fetches bookings for the whole item set in one query and
	// returns them grouped by item id.
	ListForItems(ctx context.Context, itemIDs []int64) (map[int64][]*Booking, error)
	// ListCompleted returns the booker's approved bookings of the item that
	// ended before the given time, most recent end first.
	ListCompleted(ctx context.Context, itemID, bookerID int64, before time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectBookings() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			"b.id", "b.start_time", "b.end_time",
			"b.item_id", "i.name", "b.booker_id", "u.name", "b.status",
		).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.Start, &b.End,
		&b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.Status,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("bookings").
		Columns("start_time", "end_time", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("create booking failed: %w", err)
	}

	query, args, err = selectBookings().Where(squirrel.Eq{"b.id": b.ID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build created booking query failed: %w", err)
	}
	created, err := scanBooking(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("load created booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return created, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, f ListFilter) ([]*Booking, error) {
	q := selectBookings().Where(squirrel.Eq{"b.booker_id": f.BookerID})
	return r.queryFiltered(ctx, q, f)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, f ListFilter) ([]*Booking, error) {
	q := selectBookings().Where(squirrel.Eq{"i.owner_id": f.OwnerID})
	return r.queryFiltered(ctx, q, f)
}

func (r *pgxRepository) queryFiltered(ctx context.Context, q squirrel.SelectBuilder, f ListFilter) ([]*Booking, error) {
	query, args, err := applyListFilter(q, f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

// applyListFilter adds the optional predicates, the start DESC ordering and
// the pagination window to a booking select.
func applyListFilter(q squirrel.SelectBuilder, f ListFilter) squirrel.SelectBuilder {
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"b.status": *f.Status})
	}
	if f.StartAfter != nil {
		q = q.Where(squirrel.Gt{"b.start_time": *f.StartAfter})
	}
	if f.EndBefore != nil {
		q = q.Where(squirrel.Lt{"b.end_time": *f.EndBefore})
	}
	if f.CurrentAt != nil {
		q = q.Where(squirrel.LtOrEq{"b.start_time": *f.CurrentAt})
		q = q.Where(squirrel.GtOrEq{"b.end_time": *f.CurrentAt})
	}

	q = q.OrderBy("b.start_time DESC")

	// From is a page-boundary hint, not a raw row offset.
	page := f.From / f.Size
	return q.Limit(uint64(f.Size)).Offset(uint64(page * f.Size))
}

func (r *pgxRepository) ListForItem(ctx context.Context, itemID int64) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListForItems(ctx context.Context, itemIDs []int64) (map[int64][]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item set bookings query failed: %w", err)
	}

	bookings, err := r.queryBookings(ctx, query, args)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]*Booking)
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	return grouped, nil
}

func (r *pgxRepository) ListCompleted(ctx context.Context, itemID, bookerID int64, before time.Time) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		Where(squirrel.Lt{"b.end_time": before}).
		OrderBy("b.end_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build completed bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
