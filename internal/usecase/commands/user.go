package commands

import (
	"context"
	"log/slog"

	"lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UpdateUserParams struct {
	Name  *string
	Email *string
}

type UserCommands interface {
	Create(ctx context.Context, name, email string) (*queries.UserView, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*queries.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userCommandsImpl struct {
	users     UserRepository
	userViews UserViewReader
}

func NewUserCommands(users UserRepository, userViews UserViewReader) UserCommands {
	return &userCommandsImpl{
		users:     users,
		userViews: userViews,
	}
}

// Create relies on the store's unique email key; the uniqueness check
// and the insert are one atomic operation, not a read-then-write pair.
func (c *userCommandsImpl) Create(ctx context.Context, name, email string) (*queries.UserView, error) {
	entity, err := user.NewUser(name, email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.users.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrEmailAlreadyExists)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("user created", "user_id", entity.ID())

	return c.readBack(ctx, entity.ID())
}

func (c *userCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*queries.UserView, error) {
	entity, err := c.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if params.Name != nil {
		if err := entity.Rename(*params.Name); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	if params.Email != nil {
		if err := entity.ChangeEmail(*params.Email); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	if err := c.users.Update(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrEmailAlreadyExists)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.readBack(ctx, id)
}

func (c *userCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.users.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrUserNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

func (c *userCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	view, err := c.userViews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
