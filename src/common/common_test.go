package common

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"portfolio/src/lib"
	"portfolio/src/models"
	"portfolio/src/store"

	"github.com/stretchr/testify/require"
)

type fakeCalendar struct {
	mu      sync.Mutex
	id      string
	err     error
	calls   int
	timeout time.Duration
	block   bool
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, b *models.Booking) (string, error) {
	f.mu.Lock()
	f.calls++
	if dl, ok := ctx.Deadline(); ok {
		f.timeout = time.Until(dl)
	}
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", errors.Join(lib.ErrCalendarUnavailable, ctx.Err())
	}
	return f.id, f.err
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []*lib.SendMailInput
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, in *lib.SendMailInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, in)
	return f.err
}

func newFileStore(t *testing.T) *store.FileStore {
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "bookings.json"), store.Options{})
	require.NoError(t, err)
	return s
}

func validBooking() models.NewBooking {
	return models.NewBooking{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Date:  "2026-11-03",
		Time:  "14:30",
		Notes: "Wedding highlight reel",
	}
}
