package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/speakerdesk/api"
	"github.com/Domenick1991/speakerdesk/config"
	"github.com/Domenick1991/speakerdesk/internal/bootstrap"
	"github.com/Domenick1991/speakerdesk/internal/cache"
	"github.com/Domenick1991/speakerdesk/internal/kafka"
	"github.com/Domenick1991/speakerdesk/internal/repository"
	"github.com/Domenick1991/speakerdesk/internal/service/availability"
	"github.com/Domenick1991/speakerdesk/internal/service/booking"
	"github.com/Domenick1991/speakerdesk/internal/service/speakers"
	"github.com/Domenick1991/speakerdesk/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

const migrationsFile = "db/migrations/001_init.sql"

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := applyMigrations(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SpeakersCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	speakerRepo := repository.NewSpeakerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	userService := users.NewUserService(userRepo, cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	speakerService := speakers.NewSpeakerService(speakerRepo, userRepo, redisCache)
	availabilityService := availability.NewAvailabilityService(bookingRepo, speakerRepo)
	bookingService := booking.NewBookingService(
		bookingRepo,
		speakerRepo,
		redisCache,
		producer,
		cfg.Kafka.NotificationsTopic,
		time.Duration(cfg.Booking.HoldTTLSeconds)*time.Second,
	)

	handlers := bootstrap.Handlers{
		Auth:     api.NewAuthHandler(userService),
		Speakers: api.NewSpeakerHandler(speakerService, availabilityService, cfg.Booking.DefaultRangeDays),
		Bookings: api.NewBookingHandler(bookingService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	schema, err := os.ReadFile(migrationsFile)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, string(schema))
	return err
}
