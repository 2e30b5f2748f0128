//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/commands"
	"lendshare/tests/common/builder"
	commandsmock "lendshare/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	bookings  *commandsmock.MockBookingRepository
	views     *commandsmock.MockBookingViewReader
	users     *commandsmock.MockUserReader
	items     *commandsmock.MockItemReader
	clk       *clock.MockClock
	uc        commands.BookingCommands
	notFound  error
	dbFailure error
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.bookings = commandsmock.NewMockBookingRepository(s.mockCtrl)
	s.views = commandsmock.NewMockBookingViewReader(s.mockCtrl)
	s.users = commandsmock.NewMockUserReader(s.mockCtrl)
	s.items = commandsmock.NewMockItemReader(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	s.uc = commands.NewBookingCommands(s.bookings, s.views, s.users, s.items, s.clk)
	s.notFound = infra.WrapRepoErr("no rows", nil, infra.KindNotFound)
	s.dbFailure = infra.WrapRepoErr("connection reset", nil, infra.KindDBFailure)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) expectParticipants(b *builder.BookingBuilder) {
	s.users.EXPECT().FindByID(gomock.Any(), b.BookerID).
		Return(&commands.UserSnapshot{ID: b.BookerID, Name: b.BookerName}, nil)
	s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).
		Return(&commands.ItemSnapshot{ID: b.ItemID, OwnerID: b.OwnerID, Name: b.ItemName, Available: b.Available}, nil)
}

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success: persists a waiting booking and reads the view back", func() {
		b := builder.NewBookingBuilder()
		s.clk.Set(b.Now)
		view := b.BuildView()

		s.expectParticipants(b)
		s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entity *booking.Booking) error {
				s.Equal(b.ItemID, entity.ItemID())
				s.Equal(b.BookerID, entity.BookerID())
				s.Equal(booking.StatusWaiting, entity.Status())
				return nil
			})
		s.views.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(view, nil)

		got, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.NoError(err)
		s.Equal(view, got)
	})

	s.Run("error: unknown booker", func() {
		b := builder.NewBookingBuilder()
		s.users.EXPECT().FindByID(gomock.Any(), b.BookerID).Return(nil, s.notFound)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrUserNotFound)
	})

	s.Run("error: unknown item", func() {
		b := builder.NewBookingBuilder()
		s.users.EXPECT().FindByID(gomock.Any(), b.BookerID).
			Return(&commands.UserSnapshot{ID: b.BookerID}, nil)
		s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).Return(nil, s.notFound)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrItemNotFound)
	})

	s.Run("error: unavailable item", func() {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Available = false })
		s.clk.Set(b.Now)
		s.expectParticipants(b)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrItemUnavailable)
	})

	s.Run("error: owner booking own item surfaces as not found", func() {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.BookerID = b.OwnerID })
		s.clk.Set(b.Now)
		s.expectParticipants(b)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrItemNotFound)
	})

	s.Run("error: reversed interval", func() {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.End = b.Start.Add(-time.Hour) })
		s.clk.Set(b.Now)
		s.expectParticipants(b)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrInvalidBookingInterval)
	})

	s.Run("error: start in the past", func() {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Start = b.Now.Add(-time.Hour)
		})
		s.clk.Set(b.Now)
		s.expectParticipants(b)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrBookingStartInPast)
	})

	s.Run("error: repository failure on persist", func() {
		b := builder.NewBookingBuilder()
		s.clk.Set(b.Now)
		s.expectParticipants(b)
		s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(s.dbFailure)

		_, err := s.uc.Create(context.Background(), b.ItemID, b.BookerID, b.Start, b.End)
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})
}

func (s *BookingCommandsTestSuite) waitingBooking(b *builder.BookingBuilder) *booking.Booking {
	entity, err := booking.ReconstructBooking(
		uuid.New(), b.ItemID, b.BookerID,
		b.Start, b.End, booking.StatusWaiting, b.Now, b.Now,
	)
	s.Require().NoError(err)
	return entity
}

func (s *BookingCommandsTestSuite) TestApprove() {
	s.Run("success: owner approves a waiting booking", func() {
		b := builder.NewBookingBuilder()
		entity := s.waitingBooking(b)
		view := b.BuildView()
		view.Status = booking.StatusApproved.String()

		s.bookings.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(entity, nil)
		s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).
			Return(&commands.ItemSnapshot{ID: b.ItemID, OwnerID: b.OwnerID, Available: true}, nil)
		s.bookings.EXPECT().UpdateStatusFromWaiting(gomock.Any(), entity.ID(), booking.StatusApproved).Return(nil)
		s.views.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(view, nil)

		got, err := s.uc.Approve(context.Background(), entity.ID(), b.OwnerID, true)
		s.NoError(err)
		s.Equal(booking.StatusApproved.String(), got.Status)
	})

	s.Run("success: owner rejects a waiting booking", func() {
		b := builder.NewBookingBuilder()
		entity := s.waitingBooking(b)
		view := b.BuildView()
		view.Status = booking.StatusRejected.String()

		s.bookings.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(entity, nil)
		s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).
			Return(&commands.ItemSnapshot{ID: b.ItemID, OwnerID: b.OwnerID, Available: true}, nil)
		s.bookings.EXPECT().UpdateStatusFromWaiting(gomock.Any(), entity.ID(), booking.StatusRejected).Return(nil)
		s.views.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(view, nil)

		got, err := s.uc.Approve(context.Background(), entity.ID(), b.OwnerID, false)
		s.NoError(err)
		s.Equal(booking.StatusRejected.String(), got.Status)
	})

	s.Run("error: booking not found", func() {
		id := uuid.New()
		s.bookings.EXPECT().FindByID(gomock.Any(), id).Return(nil, s.notFound)

		_, err := s.uc.Approve(context.Background(), id, uuid.New(), true)
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("error: actor is not the item owner", func() {
		b := builder.NewBookingBuilder()
		entity := s.waitingBooking(b)

		s.bookings.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(entity, nil)
		s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).
			Return(&commands.ItemSnapshot{ID: b.ItemID, OwnerID: b.OwnerID, Available: true}, nil)

		_, err := s.uc.Approve(context.Background(), entity.ID(), b.BookerID, true)
		s.ErrorIs(err, errs.ErrBookingAccessDenied)
	})

	s.Run("error: booking already decided", func() {
		b := builder.NewBookingBuilder()
		entity, err := booking.ReconstructBooking(
			uuid.New(), b.ItemID, b.BookerID,
			b.Start, b.End, booking.StatusApproved, b.Now, b.Now,
		)
		s.Require().NoError(err)

		s.bookings.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(entity, nil)
		s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).
			Return(&commands.ItemSnapshot{ID: b.ItemID, OwnerID: b.OwnerID, Available: true}, nil)

		_, err = s.uc.Approve(context.Background(), entity.ID(), b.OwnerID, true)
		s.ErrorIs(err, errs.ErrBookingAlreadyDecided)
	})

	s.Run("error: losing the race against a concurrent cancel", func() {
		b := builder.NewBookingBuilder()
		entity := s.waitingBooking(b)

		s.bookings.EXPECT().FindByID(gomock.Any(), entity.ID()).Return(entity, nil)
		s.items.EXPECT().FindByID(gomock.Any(), b.ItemID).
			Return(&commands.ItemSnapshot{ID: b.ItemID, OwnerID: b.OwnerID, Available: true}, nil)
		s.bookings.EXPECT().UpdateStatusFromWaiting(gomock.Any(), entity.ID(), booking.StatusApproved).
			Return(s.notFound)

		_, err := s.uc.Approve(context.Background(), entity.ID(), b.OwnerID, true)
		s.ErrorIs(err, errs.ErrBookingAlreadyDecided)
	})
}

func (s *BookingCommandsTestSuite) TestCancel() {
	s.Run("success: booker cancels own waiting booking", func() {
		b := builder.NewBookingBuilder()
		id := uuid.New()
		view := b.BuildView()
		view.Status = booking.StatusCanceled.String()

		s.bookings.EXPECT().CancelWaiting(gomock.Any(), id, b.BookerID).Return(nil)
		s.views.EXPECT().FindByID(gomock.Any(), id).Return(view, nil)

		got, err := s.uc.Cancel(context.Background(), id, b.BookerID)
		s.NoError(err)
		s.Equal(booking.StatusCanceled.String(), got.Status)
	})

	s.Run("error: no matching waiting booking for this booker", func() {
		id := uuid.New()
		s.bookings.EXPECT().CancelWaiting(gomock.Any(), id, gomock.Any()).Return(s.notFound)

		_, err := s.uc.Cancel(context.Background(), id, uuid.New())
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("error: repository failure", func() {
		id := uuid.New()
		s.bookings.EXPECT().CancelWaiting(gomock.Any(), id, gomock.Any()).Return(s.dbFailure)

		_, err := s.uc.Cancel(context.Background(), id, uuid.New())
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})
}
