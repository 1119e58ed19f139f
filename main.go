package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"portfolio-server/internal/config"
	"portfolio-server/internal/logger"
	"portfolio-server/internal/middleware"
	"portfolio-server/internal/models"
	"portfolio-server/internal/notify"
	"portfolio-server/internal/repository"
	"portfolio-server/internal/routes"
	"portfolio-server/internal/services"
)

func main() {
	// Load environment variables; a missing .env is fine in containers.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("portfolio-server", cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN, Debug: cfg.Database.Debug})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	appointmentRepo := repository.NewAppointmentRepository(db)
	technologyRepo := repository.NewTechnologyRepository(db)
	projectRepo := repository.NewContentRepository[models.Project](db)
	experienceRepo := repository.NewContentRepository[models.Experience](db)
	engagementRepo := repository.NewContentRepository[models.Engagement](db)
	userRepo := repository.NewUserRepository(db)

	authService := services.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionTTL)
	if _, err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	queue, closeQueue := startQueue(ctx, cfg)
	defer closeQueue()

	technologyService := services.NewTechnologyService(technologyRepo)
	bookingService := services.NewBookingService(appointmentRepo, queue, cfg.Booking.Slots, cfg.Booking.Location, cfg.Admin.NotifyEmail)
	svc := &routes.Services{
		Booking:      bookingService,
		Technologies: technologyService,
		Projects:     services.NewContentService[models.Project](projectRepo, technologyService, "Projet"),
		Experiences:  services.NewContentService[models.Experience](experienceRepo, technologyService, "Expérience"),
		Engagements:  services.NewContentService[models.Engagement](engagementRepo, technologyService, "Engagement"),
		Auth:         authService,
		Stats:        services.NewStatsService(appointmentRepo, bookingService, projectRepo, experienceRepo, engagementRepo, technologyRepo),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Sweep(ctx, time.Minute, 3*time.Minute)

	router, err := routes.NewRouter(cfg, svc, limiter)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// startQueue picks the Redis queue when REDIS_URL is set, the in-process one
// otherwise. The returned func stops it after pending jobs are handled.
func startQueue(ctx context.Context, cfg *config.Config) (notify.Queue, func()) {
	mailer, err := notify.NewMailer(cfg.Mailer)
	if err != nil {
		log.Fatal().Err(err).Msg("mailer setup failed")
	}
	worker := notify.NewWorker(mailer)

	if cfg.RedisURL != "" {
		client, err := notify.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		queue := notify.NewRedisQueue(client, notify.DefaultRedisKey, worker)
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			queue.Run(runCtx)
		}()
		log.Info().Msg("notifications use the redis queue")
		return queue, func() {
			cancel()
			<-done
			_ = client.Close()
		}
	}

	queue := notify.NewMemoryQueue(worker, 100)
	queue.Start(2)
	log.Info().Msg("notifications use the in-memory queue")
	return queue, queue.Close
}
