package store

import (
	"context"
	"log"
	"portfolio/src/models"
	"portfolio/src/types"
)

// StatelessStore accepts bookings without keeping them, for read-only deployments
// where the calendar and mail are the only record.
type StatelessStore struct {
	opts Options
}

func NewStatelessStore(opts Options) *StatelessStore {
	return &StatelessStore{opts: opts.withDefaults()}
}

func (s *StatelessStore) Add(ctx context.Context, input models.NewBooking) (*models.Booking, error) {
	b := newRecord(input, s.opts)
	log.Printf("[store] Booking %s processed (stateless)\n", b.ID)
	return &b, nil
}

func (s *StatelessStore) GetAll(ctx context.Context) ([]models.Booking, error) {
	return []models.Booking{}, nil
}

func (s *StatelessStore) UpdateStatus(ctx context.Context, id string, status types.BookingStatus) (*models.Booking, error) {
	return nil, ErrNotFound
}

func (s *StatelessStore) SetCalendarEventID(ctx context.Context, id string, eventID string) (*models.Booking, error) {
	return nil, ErrNotFound
}
