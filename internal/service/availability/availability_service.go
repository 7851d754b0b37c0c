package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/repository"
	"github.com/Domenick1991/speakerdesk/internal/schedule"
)

type AvailabilityUseCase interface {
	ListOpenSlots(ctx context.Context, speakerEmail string, fromDay, toDay time.Time) (*SpeakerAvailability, error)
}

// SpeakerAvailability pairs the directory metadata with the computed open
// slots, ascending. The listing is best-effort: the allocator, not this
// read, is the arbiter once a booking attempt races it.
type SpeakerAvailability struct {
	Speaker   domain.Speaker
	OpenSlots []time.Time
}

type AvailabilityService struct {
	bookings repository.BookingRepository
	speakers repository.SpeakerRepository
	now      func() time.Time
}

type AvailabilityServiceOption func(*AvailabilityService)

func WithClock(now func() time.Time) AvailabilityServiceOption {
	return func(s *AvailabilityService) {
		s.now = now
	}
}

func NewAvailabilityService(bookings repository.BookingRepository, speakers repository.SpeakerRepository, opts ...AvailabilityServiceOption) *AvailabilityService {
	service := &AvailabilityService{
		bookings: bookings,
		speakers: speakers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ListOpenSlots enumerates template slots between fromDay and toDay
// (inclusive calendar days, UTC) minus existing bookings and past hours.
func (s *AvailabilityService) ListOpenSlots(ctx context.Context, speakerEmail string, fromDay, toDay time.Time) (*SpeakerAvailability, error) {
	speaker, err := s.speakers.GetByEmail(ctx, speakerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTarget) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	from := schedule.DayStart(fromDay)
	to := schedule.DayStart(toDay).Add(24*time.Hour - time.Second)
	if to.Before(from) {
		return &SpeakerAvailability{Speaker: *speaker, OpenSlots: []time.Time{}}, nil
	}

	booked, err := s.bookings.ListForSpeakerBetween(ctx, speakerEmail, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[slotKey(schedule.DayStart(b.SessionAt), b.SlotIndex)] = struct{}{}
	}

	open := schedule.OpenSlots(from, to, s.now(), func(day time.Time, slot int) bool {
		_, ok := taken[slotKey(day, slot)]
		return ok
	})

	return &SpeakerAvailability{Speaker: *speaker, OpenSlots: open}, nil
}

func slotKey(day time.Time, slot int) string {
	return fmt.Sprintf("%s#%d", day.Format("2006-01-02"), slot)
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
