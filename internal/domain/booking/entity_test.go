//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusWaiting, actual.Status())
		assert.True(t, actual.IsWaiting())
	})

	t.Run("request validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "unavailable item",
				mutate: func(b *builder.BookingBuilder) { b.Available = false },
				errIs:  booking.ErrItemUnavailable,
			},
			{
				name:   "owner booking own item",
				mutate: func(b *builder.BookingBuilder) { b.BookerID = b.OwnerID },
				errIs:  booking.ErrOwnItem,
			},
			{
				name:   "start equals end",
				mutate: func(b *builder.BookingBuilder) { b.End = b.Start },
				errIs:  booking.ErrInvalidPeriod,
			},
			{
				name:   "start after end",
				mutate: func(b *builder.BookingBuilder) { b.End = b.Start.Add(-time.Hour) },
				errIs:  booking.ErrInvalidPeriod,
			},
			{
				name: "start in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.Start = b.Now.Add(-time.Hour)
					b.End = b.Now.Add(time.Hour)
				},
				errIs: booking.ErrStartInPast,
			},
			{
				name: "start exactly at now is allowed",
				mutate: func(b *builder.BookingBuilder) {
					b.Start = b.Now
					b.End = b.Now.Add(time.Hour)
				},
			},
		})
	})

	t.Run("unavailable item wins over reversed interval", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Available = false
			b.End = b.Start.Add(-time.Hour)
		}).BuildDomain()
		require.ErrorIs(t, err, booking.ErrItemUnavailable)
	})

	t.Run("self booking wins over past start", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.BookerID = b.OwnerID
			b.Start = b.Now.Add(-time.Hour)
		}).BuildDomain()
		require.ErrorIs(t, err, booking.ErrOwnItem)
	})
}

func TestDecide(t *testing.T) {
	t.Run("approve from waiting", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.Decide(true))
		assert.Equal(t, booking.StatusApproved, entity.Status())
		assert.True(t, entity.IsApproved())
	})

	t.Run("reject from waiting", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.Decide(false))
		assert.Equal(t, booking.StatusRejected, entity.Status())
	})

	t.Run("second decision fails", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.Decide(true))
		err = entity.Decide(false)
		require.ErrorIs(t, err, booking.ErrAlreadyDecided)
		assert.Equal(t, booking.StatusApproved, entity.Status())
	})

	t.Run("decision on canceled booking fails", func(t *testing.T) {
		now := time.Now()
		entity, err := booking.ReconstructBooking(
			uuid.New(), uuid.New(), uuid.New(),
			now, now.Add(time.Hour), booking.StatusCanceled, now, now,
		)
		require.NoError(t, err)

		require.ErrorIs(t, entity.Decide(true), booking.ErrAlreadyDecided)
	})
}

func TestReconstructBooking(t *testing.T) {
	t.Run("rejects invalid status", func(t *testing.T) {
		now := time.Now()
		_, err := booking.ReconstructBooking(
			uuid.New(), uuid.New(), uuid.New(),
			now, now.Add(time.Hour), booking.Status("PENDING"), now, now,
		)
		require.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
