package response

import (
	"time"

	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemRequestResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Created     time.Time       `json:"created"`
	Items       []*ItemResponse `json:"items"`
}

func FromRequestView(view *queries.RequestView) *ItemRequestResponse {
	items := FromItemViews(view.Items)
	if items == nil {
		items = []*ItemResponse{}
	}
	return &ItemRequestResponse{
		ID:          view.ID,
		Description: view.Description,
		Created:     view.Created,
		Items:       items,
	}
}

func FromRequestViews(views []*queries.RequestView) []*ItemRequestResponse {
	result := make([]*ItemRequestResponse, len(views))
	for i, view := range views {
		result[i] = FromRequestView(view)
	}
	return result
}
