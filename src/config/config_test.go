package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MAIL_DRIVER", "")
	t.Setenv("BOOKING_DURATION", "")
	t.Setenv("CALENDAR_TIMEOUT", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	t.Setenv("DAILY_REPORT_AT", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "data/bookings.json", cfg.StorePath)
	assert.Equal(t, "log", cfg.MailDriver)
	assert.Equal(t, "primary", cfg.GoogleCalendarID)
	assert.Equal(t, 30*time.Minute, cfg.BookingDuration)
	assert.Equal(t, 10*time.Second, cfg.CalendarTimeout)
	assert.False(t, cfg.MaintenanceMode)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("STORE_PATH", "/tmp/bookings.db")
	t.Setenv("BOOKING_TIMEZONE", "Europe/Lisbon")
	t.Setenv("BOOKING_DURATION", "45m")
	t.Setenv("MAINTENANCE_MODE", "true")
	t.Setenv("DAILY_REPORT_AT", "08:15")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "Europe/Lisbon", cfg.BookingTimezone.String())
	assert.Equal(t, 45*time.Minute, cfg.BookingDuration)
	assert.True(t, cfg.MaintenanceMode)

	h, m, err := cfg.DailyReportClock()
	require.NoError(t, err)
	assert.Equal(t, uint(8), h)
	assert.Equal(t, uint(15), m)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		"STORE_DRIVER":     "mongo",
		"MAIL_DRIVER":      "carrier-pigeon",
		"BOOKING_DURATION": "half an hour",
		"MAINTENANCE_MODE": "sometimes",
		"BOOKING_TIMEZONE": "Mars/Olympus",
		"DAILY_REPORT_AT":  "25:00",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestValidateDriverRequirements(t *testing.T) {
	base := func() *Config {
		return &Config{
			StoreDriver:      "file",
			StorePath:        "data/bookings.json",
			TokenStoreDriver: "file",
			MailDriver:       "log",
			BookingDuration:  time.Minute,
			CalendarTimeout:  time.Second,
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.MailDriver = "resend"
	assert.Error(t, c.Validate())

	c = base()
	c.TokenStoreDriver = "redis"
	assert.Error(t, c.Validate())

	c = base()
	c.MailDriver = "sqs"
	c.EmailQueue = "emails"
	assert.NoError(t, c.Validate())
}

func TestMissingOAuthVars(t *testing.T) {
	c := &Config{GoogleClientID: "id"}
	assert.Equal(t, []string{"GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URI"}, c.MissingOAuthVars())
	assert.False(t, c.CalendarConfigured())
}
