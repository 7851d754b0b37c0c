package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/kafka"
	"github.com/Domenick1991/speakerdesk/internal/repository"
	"github.com/Domenick1991/speakerdesk/internal/schedule"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookSlot(ctx context.Context, input BookSlotInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, userEmail string) ([]domain.Booking, error)
}

type Cache interface {
	AcquireSlotHold(ctx context.Context, speakerEmail string, day time.Time, slot int, ttl time.Duration) (bool, error)
	ReleaseSlotHold(ctx context.Context, speakerEmail string, day time.Time, slot int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	speakers           repository.SpeakerRepository
	cache              Cache
	producer           Producer
	notificationsTopic string
	holdTTL            time.Duration
	now                func() time.Time
}

// BookSlotInput carries the verified actor identity alongside the request.
// UserEmail and Role come from decoded token claims, never from the body.
type BookSlotInput struct {
	UserEmail    string
	Role         domain.Role
	SpeakerEmail string `json:"speaker_email"`
	SessionAt    string `json:"session_at"`
}

type BookingServiceOption func(*BookingService)

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	speakers repository.SpeakerRepository,
	cache Cache,
	producer Producer,
	notificationsTopic string,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:           bookings,
		speakers:           speakers,
		cache:              cache,
		producer:           producer,
		notificationsTopic: notificationsTopic,
		holdTTL:            holdTTL,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookSlot validates the actor, the speaker and the requested timestamp,
// then performs the conflict-checked insert. The read before the insert is
// a fast-path rejection only: the unique index on
// (speaker, session_date, slot_index) decides races.
func (s *BookingService) BookSlot(ctx context.Context, input BookSlotInput) (*domain.Booking, error) {
	if input.UserEmail == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.Role != domain.RoleUser {
		return nil, domain.ErrForbidden
	}

	if _, err := s.speakers.GetByEmail(ctx, input.SpeakerEmail); err != nil {
		if errors.Is(err, domain.ErrInvalidTarget) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// parse structurally, never split the raw string
	sessionAt, err := time.Parse(time.RFC3339, input.SessionAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSlot, err)
	}
	sessionAt = sessionAt.UTC()

	slot, err := schedule.SlotIndex(sessionAt)
	if err != nil {
		return nil, err
	}
	if sessionAt.Before(s.now()) {
		return nil, domain.ErrInvalidSlot
	}
	day := schedule.DayStart(sessionAt)

	held := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSlotHold(ctx, input.SpeakerEmail, day, slot, s.holdTTL)
		if err != nil {
			// redis down: the unique index still guards the insert
			log.Printf("WARNING: slot hold unavailable: %v", err)
		} else if !ok {
			return nil, domain.ErrSlotTaken
		} else {
			held = true
		}
	}

	taken, err := s.bookings.Exists(ctx, input.SpeakerEmail, day, slot)
	if err != nil {
		s.releaseHold(ctx, held, input.SpeakerEmail, day, slot)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if taken {
		s.releaseHold(ctx, held, input.SpeakerEmail, day, slot)
		return nil, domain.ErrSlotTaken
	}

	booking := &domain.Booking{
		ID:           uuid.NewString(),
		UserEmail:    input.UserEmail,
		SpeakerEmail: input.SpeakerEmail,
		SessionAt:    sessionAt,
		SlotIndex:    slot,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		s.releaseHold(ctx, held, input.SpeakerEmail, day, slot)
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// post-commit side effects never undo the booking
	if err := s.publish(ctx, kafka.EventBookingConfirmed, booking); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", kafka.EventBookingConfirmed, booking.ID, err)
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userEmail string) ([]domain.Booking, error) {
	if userEmail == "" {
		return nil, domain.ErrUnauthorized
	}
	bookings, err := s.bookings.ListForUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return bookings, nil
}

func (s *BookingService) releaseHold(ctx context.Context, held bool, speakerEmail string, day time.Time, slot int) {
	if held {
		_ = s.cache.ReleaseSlotHold(ctx, speakerEmail, day, slot)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID,
		UserEmail:    booking.UserEmail,
		SpeakerEmail: booking.SpeakerEmail,
		SessionAt:    booking.SessionAt,
		SlotIndex:    booking.SlotIndex,
	}
	return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
}

var _ BookingUseCase = (*BookingService)(nil)
