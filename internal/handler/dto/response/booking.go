package response

import (
	"time"

	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID       `json:"id"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Status    string          `json:"status"`
	Booker    UserRefResponse `json:"booker"`
	Item      ItemRefResponse `json:"item"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type UserRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:        view.ID,
		Start:     view.Start,
		End:       view.End,
		Status:    view.Status,
		Booker:    UserRefResponse{ID: view.Booker.ID, Name: view.Booker.Name},
		Item:      ItemRefResponse{ID: view.Item.ID, Name: view.Item.Name},
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, view := range views {
		result[i] = FromBookingView(view)
	}
	return result
}
