//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"
	"lendshare/tests/common/builder"
	queriesmock "lendshare/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	bookings *queriesmock.MockBookingViewRepo
	users    *queriesmock.MockUserViewRepo
	clk      *clock.MockClock
	q        queries.BookingQueries
	notFound error
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.bookings = queriesmock.NewMockBookingViewRepo(s.mockCtrl)
	s.users = queriesmock.NewMockUserViewRepo(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	s.q = queries.NewBookingQueries(s.bookings, s.users, s.clk)
	s.notFound = infra.WrapRepoErr("no rows", nil, infra.KindNotFound)
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestGetByID() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: visible to the booker", func() {
		s.bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := s.q.GetByID(context.Background(), view.Booker.ID, view.ID)
		s.NoError(err)
		s.Empty(cmp.Diff(view, got))
	})

	s.Run("success: visible to the item owner", func() {
		s.bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := s.q.GetByID(context.Background(), view.Item.OwnerID, view.ID)
		s.NoError(err)
		s.Equal(view, got)
	})

	s.Run("error: a third party gets the same answer as a missing booking", func() {
		s.bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := s.q.GetByID(context.Background(), uuid.New(), view.ID)
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("error: missing booking", func() {
		s.bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(nil, s.notFound)

		_, err := s.q.GetByID(context.Background(), view.Booker.ID, view.ID)
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})
}

func (s *BookingQueriesTestSuite) TestListForBooker() {
	bookerID := uuid.New()
	items := []*queries.BookingView{
		builder.NewBookingBuilder().BuildView(),
		builder.NewBookingBuilder().BuildView(),
	}

	s.Run("success: temporal state resolves to a filter against one instant", func() {
		s.users.EXPECT().FindByID(gomock.Any(), bookerID).
			Return(&queries.UserView{ID: bookerID}, nil)
		s.bookings.EXPECT().
			ListByBooker(gomock.Any(), bookerID, booking.Filter{Temporal: booking.TemporalCurrent}, s.clk.Now(), queries.NewPage(0, 10)).
			Return(items, nil)

		got, err := s.q.ListForBooker(context.Background(), bookerID, "current", 0, 10)
		s.NoError(err)
		s.Empty(cmp.Diff(items, got))
	})

	s.Run("success: status state resolves to a status filter", func() {
		st := booking.StatusRejected
		s.users.EXPECT().FindByID(gomock.Any(), bookerID).
			Return(&queries.UserView{ID: bookerID}, nil)
		s.bookings.EXPECT().
			ListByBooker(gomock.Any(), bookerID, booking.Filter{Status: &st}, s.clk.Now(), queries.NewPage(20, 10)).
			Return(items[:1], nil)

		got, err := s.q.ListForBooker(context.Background(), bookerID, "REJECTED", 20, 10)
		s.NoError(err)
		s.Len(got, 1)
	})

	s.Run("error: unknown state keyword", func() {
		s.users.EXPECT().FindByID(gomock.Any(), bookerID).
			Return(&queries.UserView{ID: bookerID}, nil)

		_, err := s.q.ListForBooker(context.Background(), bookerID, "UNSUPPORTED", 0, 10)
		s.ErrorIs(err, errs.ErrUnknownBookingState)
	})

	s.Run("error: unknown actor", func() {
		s.users.EXPECT().FindByID(gomock.Any(), bookerID).Return(nil, s.notFound)

		_, err := s.q.ListForBooker(context.Background(), bookerID, "ALL", 0, 10)
		s.ErrorIs(err, errs.ErrUserNotFound)
	})
}

func (s *BookingQueriesTestSuite) TestListForOwner() {
	ownerID := uuid.New()

	s.Run("success: delegates with the resolved filter", func() {
		s.users.EXPECT().FindByID(gomock.Any(), ownerID).
			Return(&queries.UserView{ID: ownerID}, nil)
		s.bookings.EXPECT().
			ListByOwner(gomock.Any(), ownerID, booking.Filter{Temporal: booking.TemporalPast}, s.clk.Now(), queries.NewPage(0, 5)).
			Return(nil, nil)

		got, err := s.q.ListForOwner(context.Background(), ownerID, "PAST", 0, 5)
		s.NoError(err)
		s.Empty(got)
	})
}

func (s *BookingQueriesTestSuite) TestLastAndNextForItem() {
	itemID := uuid.New()
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: last approved booking before now", func() {
		s.bookings.EXPECT().FindLastForItem(gomock.Any(), itemID, s.clk.Now()).Return(view, nil)

		got, err := s.q.LastForItem(context.Background(), itemID)
		s.NoError(err)
		s.Equal(view, got)
	})

	s.Run("success: no last booking yields nil without error", func() {
		s.bookings.EXPECT().FindLastForItem(gomock.Any(), itemID, s.clk.Now()).Return(nil, s.notFound)

		got, err := s.q.LastForItem(context.Background(), itemID)
		s.NoError(err)
		s.Nil(got)
	})

	s.Run("success: no next booking yields nil without error", func() {
		s.bookings.EXPECT().FindNextForItem(gomock.Any(), itemID, s.clk.Now()).Return(nil, s.notFound)

		got, err := s.q.NextForItem(context.Background(), itemID)
		s.NoError(err)
		s.Nil(got)
	})

	s.Run("error: repository failure is surfaced", func() {
		s.bookings.EXPECT().FindNextForItem(gomock.Any(), itemID, s.clk.Now()).
			Return(nil, infra.WrapRepoErr("connection reset", nil, infra.KindDBFailure))

		_, err := s.q.NextForItem(context.Background(), itemID)
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})
}

func (s *BookingQueriesTestSuite) TestHasCompletedBooking() {
	userID := uuid.New()
	itemID := uuid.New()

	s.Run("success: completed booking exists", func() {
		s.bookings.EXPECT().ExistsCompleted(gomock.Any(), userID, itemID, s.clk.Now()).Return(true, nil)

		ok, err := s.q.HasCompletedBooking(context.Background(), userID, itemID)
		s.NoError(err)
		s.True(ok)
	})

	s.Run("success: nothing completed yet", func() {
		s.bookings.EXPECT().ExistsCompleted(gomock.Any(), userID, itemID, s.clk.Now()).Return(false, nil)

		ok, err := s.q.HasCompletedBooking(context.Background(), userID, itemID)
		s.NoError(err)
		s.False(ok)
	})
}
