package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// bookingViewSelect joins booker and item so every read produces a
// complete view in one round trip.
const bookingViewSelect = `
SELECT b.id, b.start_at, b.end_at, b.status,
       u.id, u.name,
       i.id, i.name, i.owner_id,
       b.created_at, b.updated_at
  FROM bookings b
  JOIN users u ON u.id = b.booker_id
  JOIN items i ON i.id = b.item_id`

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.ItemID(), b.BookerID(),
		b.Period().Start(), b.Period().End(), b.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
SELECT id, item_id, booker_id, start_at, end_at, status, created_at, updated_at
  FROM bookings
 WHERE id = $1`

	var (
		bookingID, itemID, bookerID uuid.UUID
		start, end                  time.Time
		status                      string
		createdAt, updatedAt        time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bookingID, &itemID, &bookerID, &start, &end, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	entity, err := booking.ReconstructBooking(
		bookingID, itemID, bookerID, start, end, booking.Status(status), createdAt, updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}
	return entity, nil
}

// UpdateStatusFromWaiting re-checks WAITING inside the statement so a
// decision can never overwrite a concurrent cancellation.
func (r *BookingRepository) UpdateStatusFromWaiting(ctx context.Context, id uuid.UUID, status booking.Status) error {
	const query = `
UPDATE bookings
   SET status = $2, updated_at = now()
 WHERE id = $1 AND status = 'WAITING'`

	tag, err := r.db.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking is not waiting", nil, infra.KindNotFound)
	}
	return nil
}

// CancelWaiting is the single atomic conditional write behind cancel:
// id, booker and WAITING status are matched in one statement.
func (r *BookingRepository) CancelWaiting(ctx context.Context, id, bookerID uuid.UUID) error {
	const query = `
UPDATE bookings
   SET status = 'CANCELED', updated_at = now()
 WHERE id = $1 AND booker_id = $2 AND status = 'WAITING'`

	tag, err := r.db.Exec(ctx, query, id, bookerID)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found or cannot be canceled", nil, infra.KindNotFound)
	}
	return nil
}

type BookingReadStore struct {
	db DBTX
}

func NewBookingReadStore(db DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSelect+" WHERE b.id = $1", id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByBooker(ctx context.Context, bookerID uuid.UUID, filter booking.Filter, now time.Time, page queries.Page) ([]*queries.BookingView, error) {
	return r.list(ctx, "b.booker_id", bookerID, filter, now, page)
}

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter booking.Filter, now time.Time, page queries.Page) ([]*queries.BookingView, error) {
	return r.list(ctx, "i.owner_id", ownerID, filter, now, page)
}

// list builds the WHERE clause from the resolved filter. All rows are
// matched against the one instant the caller sampled.
func (r *BookingReadStore) list(ctx context.Context, roleColumn string, roleID uuid.UUID, filter booking.Filter, now time.Time, page queries.Page) ([]*queries.BookingView, error) {
	var sb strings.Builder
	sb.WriteString(bookingViewSelect)
	sb.WriteString(" WHERE " + roleColumn + " = $1")
	args := []any{roleID}

	if filter.Status != nil {
		args = append(args, filter.Status.String())
		fmt.Fprintf(&sb, " AND b.status = $%d", len(args))
	}

	switch filter.Temporal {
	case booking.TemporalCurrent:
		args = append(args, now)
		fmt.Fprintf(&sb, " AND b.start_at <= $%d AND b.end_at >= $%d", len(args), len(args))
	case booking.TemporalPast:
		args = append(args, now)
		fmt.Fprintf(&sb, " AND b.end_at < $%d", len(args))
	case booking.TemporalFuture:
		args = append(args, now)
		fmt.Fprintf(&sb, " AND b.start_at > $%d", len(args))
	case booking.TemporalAny:
	}

	args = append(args, page.Size, page.Offset())
	fmt.Fprintf(&sb, " ORDER BY b.start_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

// Ties on start_at break by id, the store's natural order, so repeated
// calls pick the same row.
func (r *BookingReadStore) FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingView, error) {
	query := bookingViewSelect + `
 WHERE b.item_id = $1 AND b.status = 'APPROVED' AND b.start_at < $2
 ORDER BY b.start_at DESC, b.id
 LIMIT 1`
	return r.findOne(ctx, query, itemID, now)
}

func (r *BookingReadStore) FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingView, error) {
	query := bookingViewSelect + `
 WHERE b.item_id = $1 AND b.status = 'APPROVED' AND b.start_at > $2
 ORDER BY b.start_at ASC, b.id
 LIMIT 1`
	return r.findOne(ctx, query, itemID, now)
}

func (r *BookingReadStore) findOne(ctx context.Context, query string, itemID uuid.UUID, now time.Time) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, query, itemID, now)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no booking on this side of now", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item booking", err)
	}
	return view, nil
}

func (r *BookingReadStore) ExistsCompleted(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	  FROM bookings
	 WHERE booker_id = $1 AND item_id = $2 AND status = 'APPROVED' AND end_at < $3
)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, bookerID, itemID, now).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check completed bookings", err)
	}
	return exists, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	var status string
	err := row.Scan(
		&view.ID, &view.Start, &view.End, &status,
		&view.Booker.ID, &view.Booker.Name,
		&view.Item.ID, &view.Item.Name, &view.Item.OwnerID,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.Status = status
	return &view, nil
}
