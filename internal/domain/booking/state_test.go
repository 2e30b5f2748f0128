//go:build unit

package booking_test

import (
	"testing"

	"lendshare/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  booking.State
		errIs error
	}{
		{name: "uppercase", input: "ALL", want: booking.StateAll},
		{name: "lowercase", input: "current", want: booking.StateCurrent},
		{name: "mixed case", input: "FuTuRe", want: booking.StateFuture},
		{name: "past", input: "past", want: booking.StatePast},
		{name: "waiting", input: "waiting", want: booking.StateWaiting},
		{name: "rejected", input: "REJECTED", want: booking.StateRejected},
		{name: "canceled", input: "canceled", want: booking.StateCanceled},
		{name: "unknown keyword", input: "SOMETHING", errIs: booking.ErrUnknownState},
		{name: "empty string", input: "", errIs: booking.ErrUnknownState},
		{name: "whitespace is not trimmed", input: " all ", errIs: booking.ErrUnknownState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := booking.ParseState(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateFilter(t *testing.T) {
	t.Run("temporal states carry no status restriction", func(t *testing.T) {
		for _, s := range []booking.State{booking.StateAll, booking.StateCurrent, booking.StatePast, booking.StateFuture} {
			f := s.Filter()
			assert.Nil(t, f.Status, "state %s", s)
		}
	})

	t.Run("status states resolve to their status", func(t *testing.T) {
		tests := []struct {
			state booking.State
			want  booking.Status
		}{
			{booking.StateWaiting, booking.StatusWaiting},
			{booking.StateRejected, booking.StatusRejected},
			{booking.StateCanceled, booking.StatusCanceled},
		}
		for _, tt := range tests {
			f := tt.state.Filter()
			require.NotNil(t, f.Status, "state %s", tt.state)
			assert.Equal(t, tt.want, *f.Status)
			assert.Equal(t, booking.TemporalAny, f.Temporal)
		}
	})

	t.Run("temporal mapping", func(t *testing.T) {
		assert.Equal(t, booking.TemporalAny, booking.StateAll.Filter().Temporal)
		assert.Equal(t, booking.TemporalCurrent, booking.StateCurrent.Filter().Temporal)
		assert.Equal(t, booking.TemporalPast, booking.StatePast.Filter().Temporal)
		assert.Equal(t, booking.TemporalFuture, booking.StateFuture.Filter().Temporal)
	})
}
