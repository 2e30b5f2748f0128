//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lendshare/internal/domain/comment"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/commands"
	commandsmock "lendshare/tests/mock/commands"
	queriesmock "lendshare/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CommentCommandsTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	comments *commandsmock.MockCommentRepository
	users    *commandsmock.MockUserReader
	items    *commandsmock.MockItemReader
	bookings *queriesmock.MockBookingQueries
	clk      *clock.MockClock
	uc       commands.CommentCommands

	itemID   uuid.UUID
	authorID uuid.UUID
}

func (s *CommentCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.comments = commandsmock.NewMockCommentRepository(s.mockCtrl)
	s.users = commandsmock.NewMockUserReader(s.mockCtrl)
	s.items = commandsmock.NewMockItemReader(s.mockCtrl)
	s.bookings = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	s.uc = commands.NewCommentCommands(s.comments, s.users, s.items, s.bookings, s.clk)

	s.itemID = uuid.New()
	s.authorID = uuid.New()
}

func (s *CommentCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCommentCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommentCommandsTestSuite))
}

func (s *CommentCommandsTestSuite) expectLookups() {
	s.users.EXPECT().FindByID(gomock.Any(), s.authorID).
		Return(&commands.UserSnapshot{ID: s.authorID, Name: "Past Booker"}, nil)
	s.items.EXPECT().FindByID(gomock.Any(), s.itemID).
		Return(&commands.ItemSnapshot{ID: s.itemID, OwnerID: uuid.New(), Available: true}, nil)
}

func (s *CommentCommandsTestSuite) TestCreate() {
	s.Run("success: past booker leaves a comment", func() {
		s.expectLookups()
		s.bookings.EXPECT().HasCompletedBooking(gomock.Any(), s.authorID, s.itemID).Return(true, nil)
		s.comments.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entity *comment.Comment) error {
				s.Equal(s.itemID, entity.ItemID())
				s.Equal(s.authorID, entity.AuthorID())
				s.Equal("Great drill, charged fast", entity.Text())
				s.Equal(s.clk.Now(), entity.Created())
				return nil
			})

		view, err := s.uc.Create(context.Background(), s.itemID, s.authorID, "Great drill, charged fast")
		s.NoError(err)
		s.Equal("Great drill, charged fast", view.Text)
		s.Equal("Past Booker", view.AuthorName)
		s.Equal(s.clk.Now(), view.Created)
	})

	s.Run("error: author without a completed booking", func() {
		s.expectLookups()
		s.bookings.EXPECT().HasCompletedBooking(gomock.Any(), s.authorID, s.itemID).Return(false, nil)

		_, err := s.uc.Create(context.Background(), s.itemID, s.authorID, "never used it")
		s.ErrorIs(err, errs.ErrCommentNotAllowed)
	})

	s.Run("error: blank text fails validation after the gate", func() {
		s.expectLookups()
		s.bookings.EXPECT().HasCompletedBooking(gomock.Any(), s.authorID, s.itemID).Return(true, nil)

		_, err := s.uc.Create(context.Background(), s.itemID, s.authorID, "   ")
		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("error: unknown author", func() {
		s.users.EXPECT().FindByID(gomock.Any(), s.authorID).
			Return(nil, infra.WrapRepoErr("no rows", nil, infra.KindNotFound))

		_, err := s.uc.Create(context.Background(), s.itemID, s.authorID, "text")
		s.ErrorIs(err, errs.ErrUserNotFound)
	})

	s.Run("error: unknown item", func() {
		s.users.EXPECT().FindByID(gomock.Any(), s.authorID).
			Return(&commands.UserSnapshot{ID: s.authorID}, nil)
		s.items.EXPECT().FindByID(gomock.Any(), s.itemID).
			Return(nil, infra.WrapRepoErr("no rows", nil, infra.KindNotFound))

		_, err := s.uc.Create(context.Background(), s.itemID, s.authorID, "text")
		s.ErrorIs(err, errs.ErrItemNotFound)
	})

	s.Run("error: persist failure", func() {
		s.expectLookups()
		s.bookings.EXPECT().HasCompletedBooking(gomock.Any(), s.authorID, s.itemID).Return(true, nil)
		s.comments.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("connection reset", nil, infra.KindDBFailure))

		_, err := s.uc.Create(context.Background(), s.itemID, s.authorID, "text")
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})
}
