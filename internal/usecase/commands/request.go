package commands

import (
	"context"
	"log/slog"

	"lendshare/internal/domain/request"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestCommands interface {
	Create(ctx context.Context, requestorID uuid.UUID, description string) (*queries.RequestView, error)
}

type requestCommandsImpl struct {
	requests RequestRepository
	users    UserReader
	clock    clock.Clock
}

func NewRequestCommands(requests RequestRepository, users UserReader, clk clock.Clock) RequestCommands {
	return &requestCommandsImpl{
		requests: requests,
		users:    users,
		clock:    clk,
	}
}

func (c *requestCommandsImpl) Create(ctx context.Context, requestorID uuid.UUID, description string) (*queries.RequestView, error) {
	if _, err := c.users.FindByID(ctx, requestorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := request.NewRequest(requestorID, description, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.requests.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("item request created", "request_id", entity.ID(), "requestor_id", requestorID)

	return &queries.RequestView{
		ID:          entity.ID(),
		Description: entity.Description(),
		RequestorID: entity.RequestorID(),
		Created:     entity.Created(),
		Items:       []*queries.ItemView{},
	}, nil
}
