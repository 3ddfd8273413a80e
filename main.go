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
	"github.com/sabadesa/sabadesa-be/internal/api"
	"github.com/sabadesa/sabadesa-be/internal/api/handlers"
	"github.com/sabadesa/sabadesa-be/internal/auth"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/config"
	"github.com/sabadesa/sabadesa-be/internal/database"
	"github.com/sabadesa/sabadesa-be/internal/logger"
	"github.com/sabadesa/sabadesa-be/internal/monitoring"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/validation"
	"github.com/sabadesa/sabadesa-be/internal/websocket"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	validation.UseLocale(cfg.DefaultLocale)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Analytics cache: Redis when configured, in-process otherwise.
	var c cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		c = rc
		log.Info().Msg("Using Redis cache")
	}
	defer c.Close()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	table := wilayah.Default()
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Set up services
	activityLogService := services.NewActivityLogService(db, hub)
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, userService, issuer, activityLogService)
	activityTypeService := services.NewActivityTypeService(db, activityLogService)
	eventService := services.NewEventService(db, table, activityTypeService, c, activityLogService)
	attendeeService := services.NewAttendeeService(db, table, c, activityLogService)
	importService := services.NewImportService(db, table, c, activityLogService, cfg.MaxUploadBytes)
	voteService := services.NewVoteService(db)
	analyticsService := services.NewAnalyticsService(db, table, c, cfg.CacheTTL)
	prioritizationService := services.NewPrioritizationService(db, table, c, cfg.CacheTTL)

	if err := userService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}

	// Set up and run the background system sampler
	sampler := monitoring.NewSystemSampler(cfg.DatabasePath, cfg.SystemSampleInterval, activityLogService)
	go sampler.Run()

	// Set up and run the background scheduler
	scheduler, err := monitoring.NewScheduler(prioritizationService, sessionService, activityLogService, cfg.PrioritizationCron, cfg.TokenCleanupCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure scheduler")
	}
	go scheduler.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Issuer:         issuer,
		Hub:            hub,
		Table:          table,
		Health:         handlers.NewSystemHandler(db, sampler),
		Users:          userService,
		Sessions:       sessionService,
		ActivityTypes:  activityTypeService,
		Events:         eventService,
		Attendees:      attendeeService,
		Imports:        importService,
		Votes:          voteService,
		Analytics:      analyticsService,
		Prioritization: prioritizationService,
		ActivityLog:    activityLogService,
		AllowedOrigins: cfg.AllowedOrigins(),
		SecureCookies:  cfg.IsProduction(),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sampler.Stop()   // Stop the system sampler
	scheduler.Stop() // Stop the scheduler
	hub.Stop()

	log.Info().Msg("Server exiting")
}
