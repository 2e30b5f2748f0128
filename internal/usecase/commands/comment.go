package commands

import (
	"context"
	"log/slog"

	"lendshare/internal/domain/comment"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentCommands interface {
	Create(ctx context.Context, itemID, authorID uuid.UUID, text string) (*queries.CommentView, error)
}

type commentCommandsImpl struct {
	comments CommentRepository
	users    UserReader
	items    ItemReader
	bookings queries.BookingQueries
	clock    clock.Clock
}

func NewCommentCommands(
	comments CommentRepository,
	users UserReader,
	items ItemReader,
	bookings queries.BookingQueries,
	clk clock.Clock,
) CommentCommands {
	return &commentCommandsImpl{
		comments: comments,
		users:    users,
		items:    items,
		bookings: bookings,
		clock:    clk,
	}
}

// Create stores feedback on an item. Eligibility is derived from
// booking history: the author must have an approved booking of the
// item whose end has already passed.
func (c *commentCommandsImpl) Create(ctx context.Context, itemID, authorID uuid.UUID, text string) (*queries.CommentView, error) {
	author, err := c.users.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if _, err := c.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	eligible, err := c.bookings.HasCompletedBooking(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, errs.ErrCommentNotAllowed
	}

	entity, err := comment.NewComment(itemID, authorID, text, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.comments.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("comment created", "comment_id", entity.ID(), "item_id", itemID, "author_id", authorID)

	return &queries.CommentView{
		ID:         entity.ID(),
		Text:       entity.Text(),
		AuthorName: author.Name,
		Created:    entity.Created(),
	}, nil
}
