package repository

import (
	"context"

	"lendshare/internal/domain/item"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemViewSelect = `
SELECT id, owner_id, name, description, available, request_id
  FROM items`

type ItemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	const query = `
INSERT INTO items (id, owner_id, name, description, available, request_id)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		i.ID(), i.OwnerID(), i.Name(), i.Description(), i.Available(),
		pgconv.UUIDPtrToPgtype(i.RequestID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create item", err)
	}
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	const query = `
UPDATE items
   SET name = $2, description = $3, available = $4, updated_at = now()
 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, i.ID(), i.Name(), i.Description(), i.Available())
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	const query = `
SELECT id, owner_id, name, description, available, request_id, created_at, updated_at
  FROM items
 WHERE id = $1`

	var (
		itemID, ownerID      uuid.UUID
		name, description    string
		available            bool
		requestID            pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&itemID, &ownerID, &name, &description, &available, &requestID, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}

	return item.ReconstructItem(
		itemID, ownerID, name, description, available,
		pgconv.UUIDPtrFromPgtype(requestID),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

type ItemReadStore struct {
	db DBTX
}

func NewItemReadStore(db DBTX) *ItemReadStore {
	return &ItemReadStore{db: db}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row := r.db.QueryRow(ctx, itemViewSelect+" WHERE id = $1", id)
	view, err := scanItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item view by ID", err)
	}
	return view, nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	return r.listWhere(ctx, " WHERE owner_id = $1 ORDER BY created_at", ownerID)
}

func (r *ItemReadStore) ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]*queries.ItemView, error) {
	return r.listWhere(ctx, " WHERE request_id = $1 ORDER BY created_at", requestID)
}

// Search matches name or description case-insensitively, available
// items only.
func (r *ItemReadStore) Search(ctx context.Context, text string) ([]*queries.ItemView, error) {
	const clause = ` WHERE available
   AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
 ORDER BY created_at`
	return r.listWhere(ctx, clause, text)
}

func (r *ItemReadStore) listWhere(ctx context.Context, clause string, args ...any) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx, itemViewSelect+clause, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	result := make([]*queries.ItemView, 0)
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}
	return result, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var view queries.ItemView
	var requestID pgtype.UUID
	err := row.Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Description, &view.Available, &requestID,
	)
	if err != nil {
		return nil, err
	}
	view.RequestID = pgconv.UUIDPtrFromPgtype(requestID)
	return &view, nil
}

// ItemSnapshotReader serves the write-side booking validation reads.
type ItemSnapshotReader struct {
	db DBTX
}

func NewItemSnapshotReader(db DBTX) *ItemSnapshotReader {
	return &ItemSnapshotReader{db: db}
}

func (r *ItemSnapshotReader) FindByID(ctx context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	const query = `SELECT id, owner_id, name, available FROM items WHERE id = $1`

	var snap commands.ItemSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.OwnerID, &snap.Name, &snap.Available)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item snapshot", err)
	}
	return &snap, nil
}
