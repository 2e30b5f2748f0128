package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/pkg/metrics"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Create(ctx context.Context, itemID, bookerID uuid.UUID, start, end time.Time) (*queries.BookingView, error)
	Approve(ctx context.Context, bookingID, actorID uuid.UUID, approve bool) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookings     BookingRepository
	bookingViews BookingViewReader
	users        UserReader
	items        ItemReader
	clock        clock.Clock
}

func NewBookingCommands(
	bookings BookingRepository,
	bookingViews BookingViewReader,
	users UserReader,
	items ItemReader,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings:     bookings,
		bookingViews: bookingViews,
		users:        users,
		items:        items,
		clock:        clk,
	}
}

// Create persists a new WAITING booking. Overlapping bookings of the
// same item are permitted; there is deliberately no conflict check here.
func (c *bookingCommandsImpl) Create(ctx context.Context, itemID, bookerID uuid.UUID, start, end time.Time) (*queries.BookingView, error) {
	if _, err := c.users.FindByID(ctx, bookerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	itemSnap, err := c.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := booking.NewBooking(c.clock, booking.ItemSpec{
		ID:        itemSnap.ID,
		OwnerID:   itemSnap.OwnerID,
		Available: itemSnap.Available,
	}, bookerID, start, end)
	if err != nil {
		return nil, markBookingRuleError(err)
	}

	if err := c.bookings.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking created",
		"booking_id", entity.ID(),
		"item_id", itemID,
		"booker_id", bookerID,
	)

	return c.readBack(ctx, entity.ID())
}

// Approve lets the item owner decide a WAITING booking exactly once.
func (c *bookingCommandsImpl) Approve(ctx context.Context, bookingID, actorID uuid.UUID, approve bool) (*queries.BookingView, error) {
	entity, err := c.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	itemSnap, err := c.items.FindByID(ctx, entity.ItemID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if itemSnap.OwnerID != actorID {
		return nil, errs.ErrBookingAccessDenied
	}

	if err := entity.Decide(approve); err != nil {
		return nil, errs.Mark(err, errs.ErrBookingAlreadyDecided)
	}

	// The update re-checks WAITING inside the statement; losing a race
	// against a concurrent cancel surfaces as already-processed.
	if err := c.bookings.UpdateStatusFromWaiting(ctx, bookingID, entity.Status()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingAlreadyDecided)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking decided",
		"booking_id", bookingID,
		"owner_id", actorID,
		"status", entity.Status().String(),
	)
	metrics.IncBookingDecision(entity.Status().String())

	return c.readBack(ctx, bookingID)
}

// Cancel is one atomic conditional write: the store matches
// {id, booker, WAITING} inside the statement, so a booking approved in
// between cannot be canceled after the fact.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error) {
	if err := c.bookings.CancelWaiting(ctx, bookingID, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking canceled",
		"booking_id", bookingID,
		"booker_id", actorID,
	)
	metrics.IncBookingDecision(booking.StatusCanceled.String())

	return c.readBack(ctx, bookingID)
}

func (c *bookingCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := c.bookingViews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func markBookingRuleError(err error) error {
	switch {
	case errors.Is(err, booking.ErrItemUnavailable):
		return errs.Mark(err, errs.ErrItemUnavailable)
	case errors.Is(err, booking.ErrOwnItem):
		// Reported as not-found so ownership is not leaked to an actor
		// who is not allowed to book.
		return errs.Mark(err, errs.ErrItemNotFound)
	case errors.Is(err, booking.ErrInvalidPeriod):
		return errs.Mark(err, errs.ErrInvalidBookingInterval)
	case errors.Is(err, booking.ErrStartInPast):
		return errs.Mark(err, errs.ErrBookingStartInPast)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
