package queries

import (
	"context"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingViewRepo is the read side of the booking store. List finders
// apply the resolved filter against the instant passed in, so one call
// classifies every row against the same "now".
type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, filter booking.Filter, now time.Time, page Page) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter booking.Filter, now time.Time, page Page) ([]*BookingView, error)
	FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingView, error)
	FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingView, error)
	ExistsCompleted(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)
}

type BookingQueries interface {
	// GetByID restricts visibility to the booker and the item owner.
	// A booking that exists but belongs to someone else is reported
	// exactly like one that does not exist.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, from, size int32) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, from, size int32) ([]*BookingView, error)
	// LastForItem / NextForItem return (nil, nil) when no approved
	// booking exists on the relevant side of now.
	LastForItem(ctx context.Context, itemID uuid.UUID) (*BookingView, error)
	NextForItem(ctx context.Context, itemID uuid.UUID) (*BookingView, error)
	HasCompletedBooking(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
}

type bookingQueriesImpl struct {
	bookings BookingViewRepo
	users    UserViewRepo
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingViewRepo, users UserViewRepo, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		users:    users,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.Booker.ID != actorID && view.Item.OwnerID != actorID {
		return nil, errs.ErrBookingNotFound
	}

	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, from, size int32) ([]*BookingView, error) {
	filter, err := q.resolveListInput(ctx, bookerID, state)
	if err != nil {
		return nil, err
	}
	return q.bookings.ListByBooker(ctx, bookerID, filter, q.clock.Now(), NewPage(from, size))
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, from, size int32) ([]*BookingView, error) {
	filter, err := q.resolveListInput(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}
	return q.bookings.ListByOwner(ctx, ownerID, filter, q.clock.Now(), NewPage(from, size))
}

func (q *bookingQueriesImpl) resolveListInput(ctx context.Context, actorID uuid.UUID, state string) (booking.Filter, error) {
	if _, err := q.users.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return booking.Filter{}, errs.Mark(err, errs.ErrUserNotFound)
		}
		return booking.Filter{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	st, err := booking.ParseState(state)
	if err != nil {
		return booking.Filter{}, errs.Mark(err, errs.ErrUnknownBookingState)
	}

	return st.Filter(), nil
}

func (q *bookingQueriesImpl) LastForItem(ctx context.Context, itemID uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindLastForItem(ctx, itemID, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) NextForItem(ctx context.Context, itemID uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindNextForItem(ctx, itemID, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) HasCompletedBooking(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	ok, err := q.bookings.ExistsCompleted(ctx, userID, itemID, q.clock.Now())
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return ok, nil
}
