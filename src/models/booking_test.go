package models

import (
	"portfolio/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingResolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("pending booking can be approved", func(t *testing.T) {
		b := &Booking{ID: "a", Status: types.BOOKING_PENDING}
		require.NoError(t, b.Resolve(types.BOOKING_APPROVED, now))
		assert.Equal(t, types.BOOKING_APPROVED, b.Status)
		require.NotNil(t, b.ReviewedAt)
		assert.True(t, now.Equal(*b.ReviewedAt))
	})

	t.Run("pending booking can be declined", func(t *testing.T) {
		b := &Booking{ID: "b", Status: types.BOOKING_PENDING}
		require.NoError(t, b.Resolve(types.BOOKING_DECLINED, now))
		assert.Equal(t, types.BOOKING_DECLINED, b.Status)
	})

	t.Run("resolved booking cannot be resolved again", func(t *testing.T) {
		b := &Booking{ID: "c", Status: types.BOOKING_APPROVED}
		err := b.Resolve(types.BOOKING_DECLINED, now)
		assert.ErrorIs(t, err, ErrAlreadyResolved)
		assert.Equal(t, types.BOOKING_APPROVED, b.Status)
		assert.Nil(t, b.ReviewedAt)
	})

	t.Run("pending is not a resolution", func(t *testing.T) {
		b := &Booking{ID: "d", Status: types.BOOKING_PENDING}
		err := b.Resolve(types.BOOKING_PENDING, now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.False(t, b.IsResolved())
	})
}
