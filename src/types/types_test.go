package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusIsResolution(t *testing.T) {
	assert.True(t, BOOKING_APPROVED.IsResolution())
	assert.True(t, BOOKING_DECLINED.IsResolution())
	assert.False(t, BOOKING_PENDING.IsResolution())
	assert.False(t, BookingStatus("CANCELLED").IsResolution())
}
