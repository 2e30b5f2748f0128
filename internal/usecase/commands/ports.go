package commands

import (
	"context"

	"lendshare/internal/domain/booking"
	"lendshare/internal/domain/comment"
	"lendshare/internal/domain/item"
	"lendshare/internal/domain/request"
	"lendshare/internal/domain/user"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.
type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ItemSnapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Available bool
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

type ItemReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ItemRepository interface {
	Create(ctx context.Context, i *item.Item) error
	Update(ctx context.Context, i *item.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error)
}

// BookingRepository is the write side of the booking store. The two
// conditional updates are single atomic store operations: each one
// matches the WAITING status inside the statement itself, so a racing
// approval and cancellation of the same booking cannot both win.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatusFromWaiting persists a decision; it reports
	// KindNotFound when the row is no longer WAITING.
	UpdateStatusFromWaiting(ctx context.Context, id uuid.UUID, status booking.Status) error
	// CancelWaiting flips {id, booker, WAITING} to CANCELED in one
	// conditional write; KindNotFound covers absent, foreign and
	// already-decided rows alike.
	CancelWaiting(ctx context.Context, id, bookerID uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.Request) error
}

// View readers give commands read-after-write responses without
// duplicating the read-model mapping.
type BookingViewReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type UserViewReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
}

type ItemViewReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error)
}
