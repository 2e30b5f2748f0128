package repository

import (
	"context"

	"lendshare/internal/domain/comment"
	"lendshare/internal/infra"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	const query = `
INSERT INTO comments (id, item_id, author_id, text, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID(), c.ItemID(), c.AuthorID(), c.Text(), c.Created())
	if err != nil {
		return infra.WrapRepoErr("failed to create comment", err)
	}
	return nil
}

type CommentReadStore struct {
	db DBTX
}

func NewCommentReadStore(db DBTX) *CommentReadStore {
	return &CommentReadStore{db: db}
}

func (r *CommentReadStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	const query = `
SELECT c.id, c.text, u.name, c.created_at
  FROM comments c
  JOIN users u ON u.id = c.author_id
 WHERE c.item_id = $1
 ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	defer rows.Close()

	result := make([]*queries.CommentView, 0)
	for rows.Next() {
		var view queries.CommentView
		if err := rows.Scan(&view.ID, &view.Text, &view.AuthorName, &view.Created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate comment rows", err)
	}
	return result, nil
}
