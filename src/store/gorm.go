package store

import (
	"context"
	"errors"
	"fmt"
	"portfolio/src/models"
	"portfolio/src/types"

	"gorm.io/gorm"
)

// GormStore keeps bookings in a SQL table. Status changes are a single guarded
// UPDATE, so two reviewers racing on one booking cannot both resolve it.
type GormStore struct {
	db   *gorm.DB
	opts Options
}

func NewGormStore(db *gorm.DB, opts Options) *GormStore {
	return &GormStore{db: db, opts: opts.withDefaults()}
}

func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.Booking{}); err != nil {
		return &StorageError{Op: "migrate", Err: err}
	}
	return nil
}

func (s *GormStore) Add(ctx context.Context, input models.NewBooking) (*models.Booking, error) {
	b := newRecord(input, s.opts)
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, &StorageError{Op: "insert", Err: err}
	}
	return &b, nil
}

func (s *GormStore) GetAll(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Order("seq asc").
		Find(&bookings).
		Error
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id string, status types.BookingStatus) (*models.Booking, error) {
	if !status.IsResolution() {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidTransition, status)
	}
	now := s.opts.Now()
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Booking{}).
			Where("id = ? AND status = ?", id, types.BOOKING_PENDING).
			Updates(map[string]any{"status": status, "reviewed_at": now})
		if res.Error != nil {
			return &StorageError{Op: "update", Err: res.Error}
		}
		if err := s.first(tx, id, &booking); err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s is %s", models.ErrAlreadyResolved, id, booking.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) SetCalendarEventID(ctx context.Context, id string, eventID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Booking{}).
			Where("id = ?", id).
			Update("calendar_event_id", eventID)
		if res.Error != nil {
			return &StorageError{Op: "update", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return s.first(tx, id, &booking)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) first(tx *gorm.DB, id string, out *models.Booking) error {
	err := tx.Where("id = ?", id).First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &StorageError{Op: "read", Err: err}
	}
	return nil
}
