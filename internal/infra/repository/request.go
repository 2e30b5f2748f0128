package repository

import (
	"context"

	"lendshare/internal/domain/request"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const requestViewSelect = `
SELECT id, description, requestor_id, created_at
  FROM requests`

type RequestRepository struct {
	db DBTX
}

func NewRequestRepository(db DBTX) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	const query = `
INSERT INTO requests (id, description, requestor_id, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, req.ID(), req.Description(), req.RequestorID(), req.Created())
	if err != nil {
		return infra.WrapRepoErr("failed to create request", err)
	}
	return nil
}

type RequestReadStore struct {
	db DBTX
}

func NewRequestReadStore(db DBTX) *RequestReadStore {
	return &RequestReadStore{db: db}
}

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	row := r.db.QueryRow(ctx, requestViewSelect+" WHERE id = $1", id)
	view, err := scanRequestView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request view by ID", err)
	}
	return view, nil
}

func (r *RequestReadStore) ListByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*queries.RequestView, error) {
	const clause = ` WHERE requestor_id = $1 ORDER BY created_at DESC`
	return r.listWhere(ctx, clause, requestorID)
}

// ListByOtherRequestors pages through everyone else's requests, newest
// first.
func (r *RequestReadStore) ListByOtherRequestors(ctx context.Context, requestorID uuid.UUID, page queries.Page) ([]*queries.RequestView, error) {
	const clause = ` WHERE requestor_id <> $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listWhere(ctx, clause, requestorID, page.Size, page.Offset())
}

func (r *RequestReadStore) listWhere(ctx context.Context, clause string, args ...any) ([]*queries.RequestView, error) {
	rows, err := r.db.Query(ctx, requestViewSelect+clause, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	defer rows.Close()

	result := make([]*queries.RequestView, 0)
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return result, nil
}

func scanRequestView(row pgx.Row) (*queries.RequestView, error) {
	var view queries.RequestView
	if err := row.Scan(&view.ID, &view.Description, &view.RequestorID, &view.Created); err != nil {
		return nil, err
	}
	return &view, nil
}
