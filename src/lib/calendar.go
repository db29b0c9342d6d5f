package lib

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"portfolio/src/models"
	"portfolio/src/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var (
	ErrCalendarNotConfigured = errors.New("calendar integration is not configured")
	ErrCalendarUnavailable   = errors.New("calendar service unavailable")
)

// CalendarAdapter creates the external calendar entry for an approved booking
// and returns the provider's event id.
type CalendarAdapter interface {
	CreateEvent(ctx context.Context, b *models.Booking) (string, error)
}

func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}
}

type GoogleCalendar struct {
	conf       *oauth2.Config
	tokens     TokenStore
	calendarID string
	duration   time.Duration
	loc        *time.Location
	opts       []option.ClientOption
}

type GoogleCalendarOptions struct {
	CalendarID string
	Duration   time.Duration
	Location   *time.Location
	// ClientOptions are appended after the token source, so an explicit endpoint or HTTP client wins.
	ClientOptions []option.ClientOption
}

func NewGoogleCalendar(conf *oauth2.Config, tokens TokenStore, opts GoogleCalendarOptions) *GoogleCalendar {
	if opts.CalendarID == "" {
		opts.CalendarID = "primary"
	}
	if opts.Duration <= 0 {
		opts.Duration = 30 * time.Minute
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &GoogleCalendar{
		conf:       conf,
		tokens:     tokens,
		calendarID: opts.CalendarID,
		duration:   opts.Duration,
		loc:        opts.Location,
		opts:       opts.ClientOptions,
	}
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, b *models.Booking) (string, error) {
	start, err := utils.ParseBookingTime(b.Date, b.Time, g.loc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCalendarUnavailable, err)
	}
	tok, err := g.tokens.Load(ctx)
	if errors.Is(err, ErrTokenNotFound) {
		return "", ErrCalendarNotConfigured
	}
	if err != nil {
		return "", fmt.Errorf("%w: loading token: %w", ErrCalendarUnavailable, err)
	}

	clientOpts := append([]option.ClientOption{option.WithTokenSource(g.conf.TokenSource(ctx, tok))}, g.opts...)
	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCalendarUnavailable, err)
	}
	created, err := svc.Events.Insert(g.calendarID, NewBookingEvent(b, start, g.duration)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: inserting event: %w", ErrCalendarUnavailable, err)
	}
	log.Printf("[calendar] created event %s for booking %s\n", created.Id, b.ID)
	return created.Id, nil
}

// NewBookingEvent builds the calendar entry for a booking starting at start.
func NewBookingEvent(b *models.Booking, start time.Time, duration time.Duration) *calendar.Event {
	description := fmt.Sprintf("Email: %s", b.Email)
	if b.Notes != "" {
		description += fmt.Sprintf("\n\nNotes:\n%s", b.Notes)
	}
	return &calendar.Event{
		Summary:     fmt.Sprintf("Call with %s", b.Name),
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: start.Add(duration).Format(time.RFC3339)},
		Attendees:   []*calendar.EventAttendee{{Email: b.Email, DisplayName: b.Name}},
	}
}

// DisabledCalendar stands in when no Google credentials are configured.
type DisabledCalendar struct{}

func (DisabledCalendar) CreateEvent(ctx context.Context, b *models.Booking) (string, error) {
	return "", ErrCalendarNotConfigured
}
