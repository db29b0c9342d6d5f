// Package store persists Booking records. Every implementation serializes its
// writes internally, so callers never coordinate around read-modify-write.
package store

import (
	"context"
	"errors"
	"fmt"
	"portfolio/src/models"
	"portfolio/src/types"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("booking not found")

// StorageError reports a failed read or write against the backing storage.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %s", e.Op, e.Err.Error())
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type BookingStore interface {
	Add(ctx context.Context, input models.NewBooking) (*models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status types.BookingStatus) (*models.Booking, error)
	SetCalendarEventID(ctx context.Context, id string, eventID string) (*models.Booking, error)
}

// Options are shared by the store implementations. Zero values fall back to uuid ids and wall-clock time.
type Options struct {
	NewID func() string
	Now   func() time.Time
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

func newRecord(input models.NewBooking, opts Options) models.Booking {
	return models.Booking{
		ID:        opts.NewID(),
		Name:      input.Name,
		Email:     input.Email,
		Date:      input.Date,
		Time:      input.Time,
		Notes:     input.Notes,
		Status:    types.BOOKING_PENDING,
		CreatedAt: opts.Now(),
	}
}
