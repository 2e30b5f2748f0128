package booking

import (
	"errors"
	"time"

	"lendshare/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrItemUnavailable = errors.New("item is not available for booking")
	ErrOwnItem         = errors.New("owner cannot book their own item")
	ErrInvalidPeriod   = errors.New("start time must be before end time")
	ErrStartInPast     = errors.New("start time cannot be in the past")
	ErrAlreadyDecided  = errors.New("booking already processed")
	ErrNotDecidable    = errors.New("only waiting bookings can be decided")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrZeroParticipant = errors.New("booker and item references are required")
)

// ItemSpec is the slice of item state the booking rules need. Availability
// is checked once here, at creation time; it is not re-validated later.
type ItemSpec struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Available bool
}

type Period struct {
	start time.Time
	end   time.Time
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	period    Period
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking validates a reservation request and produces a WAITING
// booking. Checks run in a fixed order and the first failure wins:
// availability, self-booking, interval ordering, past start.
func NewBooking(clk clock.Clock, item ItemSpec, bookerID uuid.UUID, start, end time.Time) (*Booking, error) {
	if item.ID == uuid.Nil || bookerID == uuid.Nil {
		return nil, ErrZeroParticipant
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	if item.OwnerID == bookerID {
		return nil, ErrOwnItem
	}
	if !start.Before(end) {
		return nil, ErrInvalidPeriod
	}
	if start.Before(clk.Now()) {
		return nil, ErrStartInPast
	}

	return &Booking{
		id:       uuid.New(),
		itemID:   item.ID,
		bookerID: bookerID,
		period:   Period{start: start, end: end},
		status:   StatusWaiting,
	}, nil
}

func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    Period{start: start, end: end},
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Decide moves a WAITING booking to APPROVED or REJECTED. Any other
// starting status fails; the owner gets exactly one decision.
func (b *Booking) Decide(approve bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approve {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) IsWaiting() bool  { return b.status == StatusWaiting }
func (b *Booking) IsApproved() bool { return b.status == StatusApproved }

func (b *Booking) IsBooker(userID uuid.UUID) bool {
	return b.bookerID == userID
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ItemID() uuid.UUID    { return b.itemID }
func (b *Booking) BookerID() uuid.UUID  { return b.bookerID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
