package queries

import (
	"context"
	"strings"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"

	"github.com/google/uuid"
)

type ItemViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
	ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]*ItemView, error)
}

type CommentViewRepo interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*CommentView, error)
}

type ItemQueries interface {
	// GetByID returns the item together with its comments and, for the
	// owner, the last/next approved booking summary.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemViewRepo
	comments CommentViewRepo
	users    UserViewRepo
	bookings BookingQueries
}

func NewItemQueries(items ItemViewRepo, comments CommentViewRepo, users UserViewRepo, bookings BookingQueries) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		users:    users,
		bookings: bookings,
	}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*ItemView, error) {
	view, err := q.items.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	comments, err := q.comments.ListByItem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view.Comments = comments

	// Booking details are visible to the owner only.
	if view.OwnerID == actorID {
		if err := q.attachBookingInfo(ctx, view); err != nil {
			return nil, err
		}
	}

	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error) {
	if _, err := q.users.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views, err := q.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	for _, view := range views {
		if err := q.attachBookingInfo(ctx, view); err != nil {
			return nil, err
		}
	}

	return views, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}

	views, err := q.items.Search(ctx, text)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *itemQueriesImpl) attachBookingInfo(ctx context.Context, view *ItemView) error {
	last, err := q.bookings.LastForItem(ctx, view.ID)
	if err != nil {
		return err
	}
	next, err := q.bookings.NextForItem(ctx, view.ID)
	if err != nil {
		return err
	}
	view.LastBooking = toBookingRef(last)
	view.NextBooking = toBookingRef(next)
	return nil
}

func toBookingRef(view *BookingView) *BookingRef {
	if view == nil {
		return nil
	}
	return &BookingRef{
		ID:       view.ID,
		BookerID: view.Booker.ID,
		Start:    view.Start,
		End:      view.End,
	}
}
