package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/speakerdesk/config"
	"github.com/Domenick1991/speakerdesk/internal/calendar"
	"github.com/Domenick1991/speakerdesk/internal/email"
	"github.com/Domenick1991/speakerdesk/internal/kafka"
	"github.com/Domenick1991/speakerdesk/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	emailSender := email.NewSender(cfg.Notifier)
	calendarClient := calendar.New(cfg.Notifier)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			handleBookingConfirmed(ctx, emailSender, calendarClient, event)
			return nil
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	reminderTicker := time.NewTicker(time.Duration(cfg.Worker.ReminderSweepMinutes) * time.Minute)
	defer reminderTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reminderTicker.C:
			sendReminders(ctx, bookingRepo, emailSender, time.Duration(cfg.Worker.ReminderWindowMinutes)*time.Minute)
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// handleBookingConfirmed mails both parties and mirrors the booking into the
// calendar. Each step only logs on failure: the booking is already stored.
func handleBookingConfirmed(ctx context.Context, sender *email.Sender, cal *calendar.Client, event kafka.BookingEvent) {
	if event.Type != kafka.EventBookingConfirmed {
		return
	}

	if err := sender.SendBookingConfirmed(ctx, event); err != nil {
		log.Printf("send confirmation email error: %v", err)
	}

	err := cal.CreateEvent(ctx, calendar.Event{
		Title:     fmt.Sprintf("Session with %s", event.SpeakerEmail),
		Start:     event.SessionAt,
		End:       event.SessionAt.Add(time.Hour),
		Attendees: []string{event.UserEmail, event.SpeakerEmail},
	})
	if err != nil {
		log.Printf("create calendar event error: %v", err)
	}
}

func sendReminders(ctx context.Context, repo repository.BookingRepository, sender *email.Sender, window time.Duration) {
	now := time.Now().UTC()
	upcoming, err := repo.ListStartingBetween(ctx, now, now.Add(window))
	if err != nil {
		log.Printf("list upcoming bookings error: %v", err)
		return
	}

	for _, b := range upcoming {
		if err := sender.SendReminder(ctx, b); err != nil {
			log.Printf("send reminder error: %v", err)
		}
	}
	if len(upcoming) > 0 {
		log.Printf("sent %d reminders", len(upcoming))
	}
}
