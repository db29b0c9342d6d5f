package models

import (
	"errors"
	"fmt"
	"portfolio/src/types"
	"time"
)

var (
	ErrAlreadyResolved   = errors.New("booking already resolved")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// NewBooking carries the requester-supplied fields of a booking.
type NewBooking struct {
	Name  string
	Email string
	Date  string
	Time  string
	Notes string
}

// Seq is the insertion order in SQL stores; the file store keeps order by array position.
type Booking struct {
	Seq             uint64              `gorm:"primaryKey;autoIncrement" json:"-"`
	ID              string              `gorm:"uniqueIndex;type:varchar(36);not null" json:"id"`
	Name            string              `gorm:"not null" json:"name"`
	Email           string              `gorm:"not null" json:"email"`
	Date            string              `gorm:"not null" json:"date"`
	Time            string              `gorm:"not null" json:"time"`
	Notes           string              `json:"notes,omitempty"`
	Status          types.BookingStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	CalendarEventID string              `json:"calendarEventId,omitempty"`
	CreatedAt       time.Time           `gorm:"index" json:"createdAt"`
	ReviewedAt      *time.Time          `json:"reviewedAt,omitempty"`
}

func (b *Booking) IsResolved() bool {
	return b.Status != types.BOOKING_PENDING
}

// Resolve moves a PENDING booking to APPROVED or DECLINED. A booking is resolved exactly once.
func (b *Booking) Resolve(status types.BookingStatus, at time.Time) error {
	if !status.IsResolution() {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, status)
	}
	if b.IsResolved() {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyResolved, b.ID, b.Status)
	}
	b.Status = status
	b.ReviewedAt = &at
	return nil
}
