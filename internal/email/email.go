package email

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/Domenick1991/speakerdesk/config"
	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/kafka"
)

// Sender delivers booking mail. With no SMTP address configured it degrades
// to logging, which keeps local runs and the worker loop alive.
type Sender struct {
	from     string
	smtpAddr string
}

func NewSender(cfg config.NotifierConfig) *Sender {
	return &Sender{from: cfg.EmailFrom, smtpAddr: cfg.SMTPAddr}
}

func (s *Sender) SendBookingConfirmed(ctx context.Context, event kafka.BookingEvent) error {
	subject := "Session confirmed"
	body := fmt.Sprintf("Your session with %s on %s is confirmed.",
		event.SpeakerEmail, event.SessionAt.UTC().Format(time.RFC1123))
	if err := s.deliver(event.UserEmail, subject, body); err != nil {
		return err
	}
	speakerBody := fmt.Sprintf("%s booked your %s slot.",
		event.UserEmail, event.SessionAt.UTC().Format(time.RFC1123))
	return s.deliver(event.SpeakerEmail, "New session booked", speakerBody)
}

func (s *Sender) SendReminder(ctx context.Context, booking domain.Booking) error {
	body := fmt.Sprintf("Reminder: your session with %s starts at %s.",
		booking.SpeakerEmail, booking.SessionAt.UTC().Format(time.RFC1123))
	return s.deliver(booking.UserEmail, "Upcoming session", body)
}

func (s *Sender) deliver(to, subject, body string) error {
	if s.smtpAddr == "" {
		log.Printf("email (log only) to=%s subject=%q", to, subject)
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, to, subject, body)
	return smtp.SendMail(s.smtpAddr, nil, s.from, []string{to}, []byte(msg))
}
