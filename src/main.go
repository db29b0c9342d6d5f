package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"portfolio/src/boot"
	"portfolio/src/common"
	"portfolio/src/config"
	"portfolio/src/middlewares"
	"portfolio/src/models"
	"portfolio/src/store"
	"portfolio/src/utils"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func setupRouter(app *boot.App) *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.Use(corsMiddleware(app.Config))
	router.Use(middlewares.Maintenance(app.Config.MaintenanceMode))
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			log.Printf("Error registering validators: %s\n", err.Error())
		}
	}

	api := router.Group(config.API_PREFIX)
	bookingHandlers(api, app)
	contactHandlers(api, app)
	uploadHandlers(api, app)
	calendarHandlers(api, app)
	return router
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.IsLocal() {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", middlewares.OPERATOR_TOKEN_HEADER)
	if cfg.AppHost != "" {
		cc.AllowOrigins = []string{cfg.AppHost}
	} else {
		cc.AllowAllOrigins = true
	}
	return cors.New(cc)
}

// abortWithError maps service errors onto the public error bodies. Internal
// details are logged, never returned.
func abortWithError(ctx *gin.Context, err error) {
	var verr *common.ValidationError
	var serr *store.StorageError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message}
		if len(verr.Missing) > 0 {
			body["missing"] = verr.Missing
		}
		ctx.AbortWithStatusJSON(http.StatusBadRequest, body)
	case errors.Is(err, common.ErrInvalidAction):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	case errors.Is(err, store.ErrNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, models.ErrAlreadyResolved):
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Booking already resolved"})
	case errors.As(err, &serr):
		log.Printf("Storage error on %s: %s\n", ctx.FullPath(), err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		log.Printf("Unhandled error on %s: %s\n", ctx.FullPath(), err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func initLogger() {
	cwd, _ := os.Getwd()
	logsDir := path.Join(cwd, "logs")
	serverLogs := path.Join(logsDir, "server.log")
	apiLogs := path.Join(logsDir, "api.log")
	gin.ForceConsoleColor()

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
		return
	}
	f, err := os.Create(apiLogs)
	if err == nil {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %s\n", err.Error())
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := boot.Init(ctx, cfg)
	if err != nil {
		log.Fatalf("Error initializing application: %s\n", err.Error())
	}
	defer app.Shutdown()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           setupRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Listening on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %s\n", err.Error())
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %s\n", err.Error())
	}
}
