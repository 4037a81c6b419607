package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/internal/config"
	"github.com/jwalitptl/clinic-portal/internal/gateway"
	adminuserHandler "github.com/jwalitptl/clinic-portal/internal/handler/adminuser"
	authHandler "github.com/jwalitptl/clinic-portal/internal/handler/auth"
	dashboardHandler "github.com/jwalitptl/clinic-portal/internal/handler/dashboard"
	notificationHandler "github.com/jwalitptl/clinic-portal/internal/handler/notification"
	patientHandler "github.com/jwalitptl/clinic-portal/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/clinic-portal/internal/handler/prescription"
	visitHandler "github.com/jwalitptl/clinic-portal/internal/handler/visit"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
	"github.com/jwalitptl/clinic-portal/internal/notify"
	"github.com/jwalitptl/clinic-portal/internal/router"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	// Initialize session storage
	store, err := newStore(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session store")
	}

	m := metrics.NewMetrics("clinic_portal")

	// Session manager and gateway reference each other: the gateway
	// sources its bearer token from the manager, the manager logs in
	// through the gateway.
	sessionMgr := session.NewManager(store, appLogger)
	gw := gateway.New(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sessionMgr, m, appLogger)
	sessionMgr.BindAuth(gw)
	defer sessionMgr.Teardown()

	// Transient notification queue
	queue := notify.NewQueue(notify.DefaultTTL, m)
	defer queue.Close()

	// Initialize handlers
	base := handler.NewHandler()
	authH := authHandler.NewHandler(sessionMgr, m)
	dashboardH := dashboardHandler.NewHandler(gw)
	patientH := patientHandler.NewHandler(gw, queue)
	visitH := visitHandler.NewHandler(gw, sessionMgr, queue)
	prescriptionH := prescriptionHandler.NewHandler(gw, sessionMgr, queue)
	adminuserH := adminuserHandler.NewHandler(gw, sessionMgr, queue)
	notificationH := notificationHandler.NewHandler(queue)

	// Setup router
	r := router.New(router.Config{
		RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst: cfg.RateLimit.Burst,
		CORS:      middleware.DefaultCORSConfig(),
	}, sessionMgr, base, authH,
		dashboardH, patientH, visitH, prescriptionH, adminuserH, notificationH)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("api", cfg.API.BaseURL).Msg("portal listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func newStore(cfg config.SessionConfig) (session.Store, error) {
	switch cfg.Backend {
	case "redis":
		return session.NewRedisStore(cfg.RedisURL, "")
	default:
		return session.NewFileStore(cfg.FilePath)
	}
}
