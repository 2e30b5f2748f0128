package repository

import (
	"context"

	"lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create leans on the unique index over email: the uniqueness check and
// the insert are one statement, so concurrent registrations of the same
// address cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
INSERT INTO users (id, name, email)
VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, u.ID(), u.Name(), u.Email())
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("email already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	const query = `
UPDATE users
   SET name = $2, email = $3, updated_at = now()
 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, u.ID(), u.Name(), u.Email())
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("email already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = `
SELECT id, name, email, created_at, updated_at
  FROM users
 WHERE id = $1`

	var view queries.UserView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Email, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return user.ReconstructUser(view.ID, view.Name, view.Email, view.CreatedAt, view.UpdatedAt), nil
}

type UserReadStore struct {
	db DBTX
}

func NewUserReadStore(db DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `
SELECT id, name, email, created_at, updated_at
  FROM users
 WHERE id = $1`

	var view queries.UserView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Email, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user view by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindAll(ctx context.Context) ([]*queries.UserView, error) {
	const query = `
SELECT id, name, email, created_at, updated_at
  FROM users
 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	result := make([]*queries.UserView, 0)
	for rows.Next() {
		var view queries.UserView
		if err := rows.Scan(&view.ID, &view.Name, &view.Email, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user rows", err)
	}
	return result, nil
}

// UserSnapshotReader serves the write-side existence checks.
type UserSnapshotReader struct {
	db DBTX
}

func NewUserSnapshotReader(db DBTX) *UserSnapshotReader {
	return &UserSnapshotReader{db: db}
}

func (r *UserSnapshotReader) FindByID(ctx context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	const query = `SELECT id, name, email FROM users WHERE id = $1`

	var snap commands.UserSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.Email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user snapshot", err)
	}
	return &snap, nil
}
