package boot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"

	"portfolio/src/common"
	"portfolio/src/config"
	"portfolio/src/db"
	"portfolio/src/lib"
	awslib "portfolio/src/lib/aws"
	"portfolio/src/lib/mailer"
	"portfolio/src/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-co-op/gocron/v2"
	"golang.org/x/oauth2"
)

// App holds every long-lived dependency the HTTP layer needs.
type App struct {
	Config         *config.Config
	Store          store.BookingStore
	Bookings       *common.BookingService
	Contact        *common.ContactService
	Uploads        *common.UploadService
	Tokens         lib.TokenStore
	OAuth          *oauth2.Config
	StateKey       []byte
	OperatorSecret string
	Scheduler      gocron.Scheduler
}

func Init(ctx context.Context, cfg *config.Config) (*App, error) {
	loadAWS := awsLoader(cfg)

	secret, err := InitOperatorSecret(ctx, cfg, loadAWS)
	if err != nil {
		return nil, err
	}
	stateKey, err := InitStateKey(cfg.OAuthStateKey, secret)
	if err != nil {
		return nil, err
	}
	s, err := InitStore(cfg)
	if err != nil {
		return nil, err
	}
	tokens, err := InitTokenStore(cfg)
	if err != nil {
		return nil, err
	}
	sender, err := mailer.New(ctx, cfg, loadAWS)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:         cfg,
		Store:          s,
		Tokens:         tokens,
		StateKey:       stateKey,
		OperatorSecret: secret,
		Contact:        common.NewContactService(sender, cfg.OwnerEmail),
	}

	var calendar lib.CalendarAdapter = lib.DisabledCalendar{}
	if cfg.CalendarConfigured() {
		app.OAuth = lib.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
		calendar = lib.NewGoogleCalendar(app.OAuth, tokens, lib.GoogleCalendarOptions{
			CalendarID: cfg.GoogleCalendarID,
			Duration:   cfg.BookingDuration,
			Location:   cfg.BookingTimezone,
		})
	} else {
		log.Println("Google Calendar credentials not set; approvals will not create events")
	}
	app.Bookings = common.NewBookingService(s, calendar, sender, common.BookingServiceOptions{
		Location:          cfg.BookingTimezone,
		SideEffectTimeout: cfg.CalendarTimeout,
	})

	if cfg.S3BucketName != "" {
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, err
		}
		app.Uploads = common.NewUploadService(awslib.NewS3Presigner(awsCfg, cfg.S3BucketName))
	}

	if cfg.DailyReportAt != "" {
		if app.Scheduler, err = InitScheduler(cfg, app.Bookings); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func (a *App) Shutdown() {
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			log.Printf("Error stopping scheduler: %s\n", err.Error())
		}
	}
}

func awsLoader(cfg *config.Config) mailer.AWSConfigLoader {
	var (
		once   sync.Once
		awsCfg aws.Config
		err    error
	)
	return func(ctx context.Context) (aws.Config, error) {
		once.Do(func() {
			awsCfg, err = awslib.LoadConfig(ctx, cfg.AWSRegion, cfg.AWSRoleARN)
		})
		return awsCfg, err
	}
}

func InitStore(cfg *config.Config) (store.BookingStore, error) {
	switch cfg.StoreDriver {
	case "none":
		log.Println("STORE_DRIVER=none: bookings are not persisted")
		return store.NewStatelessStore(store.Options{}), nil
	case "file":
		return store.NewFileStore(cfg.StorePath, store.Options{})
	case "sqlite", "postgres":
		dsn := cfg.StorePath
		if cfg.StoreDriver == "postgres" {
			dsn = config.GetDSN()
		}
		conn, err := db.Open(cfg.StoreDriver, dsn, cfg.IsLocal())
		if err != nil {
			return nil, err
		}
		s := store.NewGormStore(conn, store.Options{})
		if err := s.Migrate(); err != nil {
			return nil, fmt.Errorf("migrating bookings: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func InitTokenStore(cfg *config.Config) (lib.TokenStore, error) {
	var tokens lib.TokenStore
	switch cfg.TokenStoreDriver {
	case "redis":
		rdb, err := lib.NewRedisClient(cfg.RedisHost)
		if err != nil {
			return nil, err
		}
		tokens = lib.NewRedisTokenStore(rdb)
	default:
		tokens = lib.NewFileTokenStore(cfg.CalendarTokenFile)
	}
	if cfg.GoogleRefreshToken != "" {
		return &lib.StaticRefreshToken{RefreshToken: cfg.GoogleRefreshToken, Next: tokens}, nil
	}
	return tokens, nil
}

// InitOperatorSecret prefers the Secrets Manager secret when one is named.
func InitOperatorSecret(ctx context.Context, cfg *config.Config, loadAWS mailer.AWSConfigLoader) (string, error) {
	if cfg.AdminTokenSecretID == "" {
		if cfg.AdminToken == "" {
			log.Println("ADMIN_TOKEN is not set; operator endpoints will reject every request")
		}
		return cfg.AdminToken, nil
	}
	awsCfg, err := loadAWS(ctx)
	if err != nil {
		return "", err
	}
	return awslib.GetSecretString(ctx, awslib.NewSecretsClient(awsCfg), cfg.AdminTokenSecretID, "ADMIN_TOKEN")
}

// InitStateKey returns the AES key that seals OAuth state. Without OAUTH_STATE_KEY it
// is derived from the operator secret. With neither set it returns nil and the
// calendar OAuth endpoints stay closed.
func InitStateKey(hexKey, secret string) ([]byte, error) {
	if hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("OAUTH_STATE_KEY: %w", err)
		}
		switch len(key) {
		case 16, 24, 32:
			return key, nil
		}
		return nil, errors.New("OAUTH_STATE_KEY must be 16, 24 or 32 bytes of hex")
	}
	if secret == "" {
		log.Println("Neither OAUTH_STATE_KEY nor ADMIN_TOKEN is set; calendar OAuth is disabled")
		return nil, nil
	}
	sum := sha256.Sum256([]byte("calendar-oauth-state:" + secret))
	return sum[:], nil
}

func InitScheduler(cfg *config.Config, bookings *common.BookingService) (gocron.Scheduler, error) {
	hour, minute, err := cfg.DailyReportClock()
	if err != nil {
		return nil, err
	}
	sched, err := lib.NewScheduler()
	if err != nil {
		return nil, err
	}
	owner := cfg.OwnerEmail
	_, err = lib.ScheduleDaily(sched, "daily-booking-digest", hour, minute, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CalendarTimeout)
		defer cancel()
		if _, err := bookings.SendDigest(ctx, owner); err != nil {
			log.Printf("Error sending daily digest: %s\n", err.Error())
		}
	})
	if err != nil {
		sched.Shutdown()
		return nil, err
	}
	sched.Start()
	return sched, nil
}
