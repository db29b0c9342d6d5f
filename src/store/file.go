package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"portfolio/src/models"
	"portfolio/src/types"
	"sync"
)

// FileStore keeps bookings as a JSON array in a single file.
type FileStore struct {
	mu   sync.Mutex
	path string
	opts Options
}

func NewFileStore(path string, opts Options) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "init", Err: err}
	}
	return &FileStore{path: path, opts: opts.withDefaults()}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Add(ctx context.Context, input models.NewBooking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings, err := s.read()
	if err != nil {
		return nil, err
	}
	b := newRecord(input, s.opts)
	bookings = append(bookings, b)
	if err := s.write(bookings); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *FileStore) GetAll(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) UpdateStatus(ctx context.Context, id string, status types.BookingStatus) (*models.Booking, error) {
	return s.mutate(id, func(b *models.Booking) error {
		return b.Resolve(status, s.opts.Now())
	})
}

func (s *FileStore) SetCalendarEventID(ctx context.Context, id string, eventID string) (*models.Booking, error) {
	return s.mutate(id, func(b *models.Booking) error {
		b.CalendarEventID = eventID
		return nil
	})
}

func (s *FileStore) mutate(id string, fn func(b *models.Booking) error) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if err := fn(&bookings[i]); err != nil {
			return nil, err
		}
		if err := s.write(bookings); err != nil {
			return nil, err
		}
		b := bookings[i]
		return &b, nil
	}
	return nil, ErrNotFound
}

func (s *FileStore) read() ([]models.Booking, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	bookings := []models.Booking{}
	if len(data) == 0 {
		return bookings, nil
	}
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return bookings, nil
}

// write swaps the file in by rename; readers only ever see a complete array.
func (s *FileStore) write(bookings []models.Booking) error {
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookings-*.json")
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StorageError{Op: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &StorageError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}
