package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio/src/lib"
	"portfolio/src/lib/mailer"
	"portfolio/src/models"
	"portfolio/src/store"
	"portfolio/src/types"
	"portfolio/src/utils"
)

type BookingService struct {
	store    store.BookingStore
	calendar lib.CalendarAdapter
	mailer   mailer.Sender
	loc      *time.Location
	timeout  time.Duration
}

type BookingServiceOptions struct {
	Location *time.Location
	// SideEffectTimeout bounds the calendar call and the confirmation email after an approval.
	SideEffectTimeout time.Duration
}

// NewBookingService wires the booking lifecycle. calendar and sender may be nil.
func NewBookingService(s store.BookingStore, calendar lib.CalendarAdapter, sender mailer.Sender, opts BookingServiceOptions) *BookingService {
	if calendar == nil {
		calendar = lib.DisabledCalendar{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.SideEffectTimeout <= 0 {
		opts.SideEffectTimeout = 10 * time.Second
	}
	return &BookingService{
		store:    s,
		calendar: calendar,
		mailer:   sender,
		loc:      opts.Location,
		timeout:  opts.SideEffectTimeout,
	}
}

// Submit validates a booking request and records it as PENDING.
func (s *BookingService) Submit(ctx context.Context, input models.NewBooking) (*models.Booking, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Notes = strings.TrimSpace(input.Notes)

	missing := missingFields(
		[2]string{"name", input.Name},
		[2]string{"email", input.Email},
		[2]string{"date", input.Date},
		[2]string{"time", input.Time},
	)
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "Missing required fields", Missing: missing}
	}
	if _, err := utils.ParseBookingTime(input.Date, input.Time, s.loc); err != nil {
		return nil, &ValidationError{Message: "Invalid date or time format"}
	}
	b, err := s.store.Add(ctx, input)
	if err != nil {
		return nil, err
	}
	log.Printf("[booking] new request %s for %s %s\n", b.ID, b.Date, b.Time)
	return b, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.store.GetAll(ctx)
}

// Review resolves a PENDING booking. Approval then attempts the calendar entry
// and the requester's confirmation email; neither failure undoes the approval.
func (s *BookingService) Review(ctx context.Context, id string, action types.ReviewAction) (*models.Booking, error) {
	status, ok := action.Status()
	if !ok || strings.TrimSpace(id) == "" {
		return nil, ErrInvalidAction
	}
	b, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	log.Printf("[booking] %s -> %s\n", b.ID, b.Status)
	if b.Status != types.BOOKING_APPROVED {
		return b, nil
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	b = s.createCalendarEvent(sctx, b)
	s.sendConfirmation(sctx, b)
	return b, nil
}

func (s *BookingService) createCalendarEvent(ctx context.Context, b *models.Booking) *models.Booking {
	eventID, err := s.calendar.CreateEvent(ctx, b)
	if errors.Is(err, lib.ErrCalendarNotConfigured) {
		log.Printf("[booking] %s approved without calendar entry: %s\n", b.ID, err.Error())
		return b
	}
	if err != nil {
		log.Printf("[booking] calendar event for %s failed: %s\n", b.ID, err.Error())
		return b
	}
	updated, err := s.store.SetCalendarEventID(ctx, b.ID, eventID)
	if err != nil {
		log.Printf("[booking] could not record calendar event %s for %s: %s\n", eventID, b.ID, err.Error())
		b.CalendarEventID = eventID
		return b
	}
	return updated
}

func (s *BookingService) sendConfirmation(ctx context.Context, b *models.Booking) {
	if s.mailer == nil {
		return
	}
	err := s.mailer.Send(ctx, &lib.SendMailInput{
		To:      []string{b.Email},
		Subject: "Your call is confirmed",
		Body:    fmt.Sprintf("Hi %s,\n\nYour call on %s at %s is confirmed. Talk soon!\n", b.Name, b.Date, b.Time),
	})
	if err != nil {
		log.Printf("[booking] confirmation email for %s failed: %s\n", b.ID, err.Error())
	}
}
