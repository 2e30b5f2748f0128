package commands

import (
	"context"
	"log/slog"

	"lendshare/internal/domain/item"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateItemParams struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

type UpdateItemParams struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, params CreateItemParams) (*queries.ItemView, error)
	Update(ctx context.Context, itemID, actorID uuid.UUID, params UpdateItemParams) (*queries.ItemView, error)
	Delete(ctx context.Context, itemID, actorID uuid.UUID) error
}

type itemCommandsImpl struct {
	items     ItemRepository
	itemViews ItemViewReader
	users     UserReader
}

func NewItemCommands(items ItemRepository, itemViews ItemViewReader, users UserReader) ItemCommands {
	return &itemCommandsImpl{
		items:     items,
		itemViews: itemViews,
		users:     users,
	}
}

func (c *itemCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, params CreateItemParams) (*queries.ItemView, error) {
	if _, err := c.users.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := item.NewItem(ownerID, params.Name, params.Description, params.Available, params.RequestID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.items.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("item created", "item_id", entity.ID(), "owner_id", ownerID)

	return c.readBack(ctx, entity.ID())
}

func (c *itemCommandsImpl) Update(ctx context.Context, itemID, actorID uuid.UUID, params UpdateItemParams) (*queries.ItemView, error) {
	entity, err := c.findOwned(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if err := entity.Rename(*params.Name); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	if params.Description != nil {
		if err := entity.Redescribe(*params.Description); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	if params.Available != nil {
		entity.SetAvailable(*params.Available)
	}

	if err := c.items.Update(ctx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.readBack(ctx, itemID)
}

func (c *itemCommandsImpl) Delete(ctx context.Context, itemID, actorID uuid.UUID) error {
	if _, err := c.findOwned(ctx, itemID, actorID); err != nil {
		return err
	}

	if err := c.items.Delete(ctx, itemID); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("item deleted", "item_id", itemID)
	return nil
}

func (c *itemCommandsImpl) findOwned(ctx context.Context, itemID, actorID uuid.UUID) (*item.Item, error) {
	entity, err := c.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !entity.IsOwnedBy(actorID) {
		return nil, errs.ErrItemAccessDenied
	}
	return entity, nil
}

func (c *itemCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	view, err := c.itemViews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
