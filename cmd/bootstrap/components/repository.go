package components

import (
	repo_impl "lendshare/internal/infra/repository"
	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewItemRepository,
			fx.As(new(commands.ItemRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewCommentRepository,
			fx.As(new(commands.CommentRepository)),
		),
		fx.Annotate(
			repo_impl.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
		),
		// Write-side validation reads
		fx.Annotate(
			repo_impl.NewUserSnapshotReader,
			fx.As(new(commands.UserReader)),
		),
		fx.Annotate(
			repo_impl.NewItemSnapshotReader,
			fx.As(new(commands.ItemReader)),
		),
		// Read side
		fx.Annotate(
			repo_impl.NewUserReadStore,
			fx.As(new(queries.UserViewRepo)),
			fx.As(new(commands.UserViewReader)),
		),
		fx.Annotate(
			repo_impl.NewItemReadStore,
			fx.As(new(queries.ItemViewRepo)),
			fx.As(new(commands.ItemViewReader)),
		),
		fx.Annotate(
			repo_impl.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(commands.BookingViewReader)),
		),
		fx.Annotate(
			repo_impl.NewCommentReadStore,
			fx.As(new(queries.CommentViewRepo)),
		),
		fx.Annotate(
			repo_impl.NewRequestReadStore,
			fx.As(new(queries.RequestViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}
