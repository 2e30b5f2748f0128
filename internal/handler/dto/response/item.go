package response

import (
	"time"

	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Available   bool                `json:"available"`
	RequestID   *uuid.UUID          `json:"requestId,omitempty"`
	LastBooking *BookingRefResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingRefResponse `json:"nextBooking,omitempty"`
	Comments    []*CommentResponse  `json:"comments,omitempty"`
}

type BookingRefResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromItemView(view *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Available:   view.Available,
		RequestID:   view.RequestID,
		LastBooking: fromBookingRef(view.LastBooking),
		NextBooking: fromBookingRef(view.NextBooking),
		Comments:    FromCommentViews(view.Comments),
	}
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	result := make([]*ItemResponse, len(views))
	for i, view := range views {
		result[i] = FromItemView(view)
	}
	return result
}

func FromCommentView(view *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         view.ID,
		Text:       view.Text,
		AuthorName: view.AuthorName,
		Created:    view.Created,
	}
}

func FromCommentViews(views []*queries.CommentView) []*CommentResponse {
	if views == nil {
		return nil
	}
	result := make([]*CommentResponse, len(views))
	for i, view := range views {
		result[i] = FromCommentView(view)
	}
	return result
}

func fromBookingRef(ref *queries.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:       ref.ID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
	}
}
