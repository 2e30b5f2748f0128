package queries

import (
	"context"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"

	"github.com/google/uuid"
)

type RequestViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*RequestView, error)
	ListByOtherRequestors(ctx context.Context, requestorID uuid.UUID, page Page) ([]*RequestView, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*RequestView, error)
	ListOwn(ctx context.Context, requestorID uuid.UUID) ([]*RequestView, error)
	ListOthers(ctx context.Context, actorID uuid.UUID, from, size int32) ([]*RequestView, error)
}

type requestQueriesImpl struct {
	requests RequestViewRepo
	items    ItemViewRepo
	users    UserViewRepo
}

func NewRequestQueries(requests RequestViewRepo, items ItemViewRepo, users UserViewRepo) RequestQueries {
	return &requestQueriesImpl{
		requests: requests,
		items:    items,
		users:    users,
	}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*RequestView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.requests.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := q.attachItems(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) ListOwn(ctx context.Context, requestorID uuid.UUID) ([]*RequestView, error) {
	if err := q.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}

	views, err := q.requests.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.attachItemsAll(ctx, views)
}

func (q *requestQueriesImpl) ListOthers(ctx context.Context, actorID uuid.UUID, from, size int32) ([]*RequestView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	views, err := q.requests.ListByOtherRequestors(ctx, actorID, NewPage(from, size))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.attachItemsAll(ctx, views)
}

func (q *requestQueriesImpl) requireUser(ctx context.Context, id uuid.UUID) error {
	if _, err := q.users.FindByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrUserNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (q *requestQueriesImpl) attachItemsAll(ctx context.Context, views []*RequestView) ([]*RequestView, error) {
	for _, view := range views {
		if err := q.attachItems(ctx, view); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (q *requestQueriesImpl) attachItems(ctx context.Context, view *RequestView) error {
	items, err := q.items.ListByRequestID(ctx, view.ID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view.Items = items
	return nil
}
