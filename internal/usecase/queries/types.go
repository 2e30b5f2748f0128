package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"owner_id"`
}

type BookingView struct {
	ID        uuid.UUID `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	Booker    UserRef   `json:"booker"`
	Item      ItemRef   `json:"item"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingRef is the compact last/next summary embedded in item views.
type BookingRef struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	RequestID   *uuid.UUID     `json:"request_id,omitempty"`
	LastBooking *BookingRef    `json:"last_booking,omitempty"`
	NextBooking *BookingRef    `json:"next_booking,omitempty"`
	Comments    []*CommentView `json:"comments,omitempty"`
}

type RequestView struct {
	ID          uuid.UUID   `json:"id"`
	Description string      `json:"description"`
	RequestorID uuid.UUID   `json:"requestor_id"`
	Created     time.Time   `json:"created"`
	Items       []*ItemView `json:"items"`
}

const DefaultPageSize = 10

// Page translates an offset/limit pair into page-number pagination:
// page = from / size (integer division), as the listing endpoints expose it.
type Page struct {
	Number int32
	Size   int32
}

func NewPage(from, size int32) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if from < 0 {
		from = 0
	}
	return Page{Number: from / size, Size: size}
}

func (p Page) Offset() int32 {
	return p.Number * p.Size
}
