package boot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"portfolio/src/config"
	"portfolio/src/lib"
	"portfolio/src/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		APIEnv:            "test",
		StoreDriver:       "file",
		StorePath:         filepath.Join(dir, "data", "bookings.json"),
		TokenStoreDriver:  "file",
		CalendarTokenFile: filepath.Join(dir, "token.json"),
		MailDriver:        "log",
		AdminToken:        "operator",
		BookingTimezone:   time.UTC,
		BookingDuration:   30 * time.Minute,
		CalendarTimeout:   time.Second,
		GoogleCalendarID:  "primary",
	}
}

func TestInitMinimal(t *testing.T) {
	cfg := testConfig(t)
	app, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Shutdown()

	assert.IsType(t, &store.FileStore{}, app.Store)
	assert.Nil(t, app.OAuth)
	assert.Nil(t, app.Uploads)
	assert.Nil(t, app.Scheduler)
	assert.Equal(t, "operator", app.OperatorSecret)
	assert.Len(t, app.StateKey, 32)
}

func TestInitWithCalendarAndDigest(t *testing.T) {
	cfg := testConfig(t)
	cfg.GoogleClientID = "id"
	cfg.GoogleClientSecret = "secret"
	cfg.GoogleRedirectURI = "http://localhost:8080/api/calendar/callback"
	cfg.DailyReportAt = "06:00"

	app, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Shutdown()

	require.NotNil(t, app.OAuth)
	assert.Equal(t, cfg.GoogleRedirectURI, app.OAuth.RedirectURL)
	require.NotNil(t, app.Scheduler)
	assert.Len(t, app.Scheduler.Jobs(), 1)
}

func TestInitStoreDrivers(t *testing.T) {
	cfg := testConfig(t)

	cfg.StoreDriver = "none"
	s, err := InitStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.StatelessStore{}, s)

	cfg.StoreDriver = "sqlite"
	cfg.StorePath = filepath.Join(t.TempDir(), "bookings.db")
	s, err = InitStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.GormStore{}, s)

	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	cfg.StoreDriver = "mongo"
	_, err = InitStore(cfg)
	assert.Error(t, err)
}

func TestInitTokenStore(t *testing.T) {
	cfg := testConfig(t)
	tokens, err := InitTokenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &lib.FileTokenStore{}, tokens)

	cfg.GoogleRefreshToken = "env-refresh"
	tokens, err = InitTokenStore(cfg)
	require.NoError(t, err)
	tok, err := tokens.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-refresh", tok.RefreshToken)

	cfg.GoogleRefreshToken = ""
	cfg.TokenStoreDriver = "redis"
	cfg.RedisHost = "redis://localhost:6379/0"
	tokens, err = InitTokenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &lib.RedisTokenStore{}, tokens)
}

func TestInitStateKey(t *testing.T) {
	key, err := InitStateKey("00112233445566778899aabbccddeeff", "ignored")
	require.NoError(t, err)
	assert.Len(t, key, 16)

	_, err = InitStateKey("abcd", "x")
	assert.Error(t, err)
	_, err = InitStateKey("zz", "x")
	assert.Error(t, err)

	a, err := InitStateKey("", "one")
	require.NoError(t, err)
	b, err := InitStateKey("", "two")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	none, err := InitStateKey("", "")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestInitOperatorSecretFromEnv(t *testing.T) {
	cfg := testConfig(t)
	called := false
	secret, err := InitOperatorSecret(context.Background(), cfg, func(ctx context.Context) (aws.Config, error) {
		called = true
		return aws.Config{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "operator", secret)
	assert.False(t, called)
}
