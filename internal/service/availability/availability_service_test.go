package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Exists(ctx context.Context, speakerEmail string, day time.Time, slot int) (bool, error) {
	args := m.Called(ctx, speakerEmail, day, slot)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListForSpeakerBetween(ctx context.Context, speakerEmail string, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, speakerEmail, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForUser(ctx context.Context, userEmail string) ([]domain.Booking, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockSpeakerRepository struct {
	mock.Mock
}

func (m *MockSpeakerRepository) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Speaker), args.Error(1)
}

func (m *MockSpeakerRepository) List(ctx context.Context) ([]domain.Speaker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Speaker), args.Error(1)
}

func (m *MockSpeakerRepository) UpsertProfile(ctx context.Context, speaker *domain.Speaker) error {
	args := m.Called(ctx, speaker)
	return args.Error(0)
}

var speakerBob = &domain.Speaker{Email: "bob@speakers.dev", Name: "Bob", Expertise: "distributed systems", PricePerHourCents: 12000}

func slotOn(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

func TestAvailabilityService_AllSlotsOpenWithoutBookings(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	now := day.Add(-24 * time.Hour)
	service := NewAvailabilityService(mockBookings, mockSpeakers, WithClock(func() time.Time { return now }))

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, speakerBob.Email).Return(speakerBob, nil).Once()
	mockBookings.On("ListForSpeakerBetween", ctx, speakerBob.Email, mock.Anything, mock.Anything).
		Return([]domain.Booking{}, nil).Once()

	result, err := service.ListOpenSlots(ctx, speakerBob.Email, day, day)

	assert.NoError(t, err)
	assert.Equal(t, *speakerBob, result.Speaker)
	assert.Len(t, result.OpenSlots, schedule.SlotsPerDay)
	assert.Equal(t, slotOn(day, 9), result.OpenSlots[0])
	assert.Equal(t, slotOn(day, 16), result.OpenSlots[len(result.OpenSlots)-1])
}

func TestAvailabilityService_SubtractsBookings(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	now := day.Add(-24 * time.Hour)
	service := NewAvailabilityService(mockBookings, mockSpeakers, WithClock(func() time.Time { return now }))

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, speakerBob.Email).Return(speakerBob, nil).Once()
	mockBookings.On("ListForSpeakerBetween", ctx, speakerBob.Email, mock.Anything, mock.Anything).
		Return([]domain.Booking{
			{SpeakerEmail: speakerBob.Email, SessionAt: slotOn(day, 9), SlotIndex: 0},
			{SpeakerEmail: speakerBob.Email, SessionAt: slotOn(day, 16), SlotIndex: 7},
		}, nil).Once()

	result, err := service.ListOpenSlots(ctx, speakerBob.Email, day, day)

	assert.NoError(t, err)
	assert.Len(t, result.OpenSlots, schedule.SlotsPerDay-2)
	for _, s := range result.OpenSlots {
		assert.NotEqual(t, slotOn(day, 9), s)
		assert.NotEqual(t, slotOn(day, 16), s)
	}
}

func TestAvailabilityService_ExcludesPastHoursToday(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	now := slotOn(day, 14).Add(5 * time.Minute)
	service := NewAvailabilityService(mockBookings, mockSpeakers, WithClock(func() time.Time { return now }))

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, speakerBob.Email).Return(speakerBob, nil).Once()
	mockBookings.On("ListForSpeakerBetween", ctx, speakerBob.Email, mock.Anything, mock.Anything).
		Return([]domain.Booking{}, nil).Once()

	result, err := service.ListOpenSlots(ctx, speakerBob.Email, day, day)

	assert.NoError(t, err)
	// only 15:00 and 16:00 are still ahead
	assert.Len(t, result.OpenSlots, 2)
	assert.Equal(t, slotOn(day, 15), result.OpenSlots[0])
	assert.Equal(t, slotOn(day, 16), result.OpenSlots[1])
}

func TestAvailabilityService_WeekRangeProperties(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	now := slotOn(day, 10).Add(30 * time.Minute)
	service := NewAvailabilityService(mockBookings, mockSpeakers, WithClock(func() time.Time { return now }))

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, speakerBob.Email).Return(speakerBob, nil).Once()
	mockBookings.On("ListForSpeakerBetween", ctx, speakerBob.Email, mock.Anything, mock.Anything).
		Return([]domain.Booking{}, nil).Once()

	result, err := service.ListOpenSlots(ctx, speakerBob.Email, day, day.AddDate(0, 0, 7))

	assert.NoError(t, err)
	for _, s := range result.OpenSlots {
		assert.False(t, s.Before(now))
		assert.Zero(t, s.Minute())
		assert.GreaterOrEqual(t, s.Hour(), schedule.OpenHour)
		assert.LessOrEqual(t, s.Hour(), schedule.CloseHour)
	}
	// 6 slots left today, 8 on each of the following seven days
	assert.Len(t, result.OpenSlots, 6+7*schedule.SlotsPerDay)
}

func TestAvailabilityService_UnknownSpeaker(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}
	service := NewAvailabilityService(mockBookings, mockSpeakers)

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, "ghost@speakers.dev").Return(nil, domain.ErrInvalidTarget).Once()

	result, err := service.ListOpenSlots(ctx, "ghost@speakers.dev", time.Now(), time.Now())

	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	assert.Nil(t, result)
	mockBookings.AssertNotCalled(t, "ListForSpeakerBetween")
}

func TestAvailabilityService_StoreError(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}
	service := NewAvailabilityService(mockBookings, mockSpeakers)

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, speakerBob.Email).Return(speakerBob, nil).Once()
	mockBookings.On("ListForSpeakerBetween", ctx, speakerBob.Email, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	result, err := service.ListOpenSlots(ctx, speakerBob.Email, day, day)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, result)
}

func TestAvailabilityService_InvertedRangeIsEmpty(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSpeakers := &MockSpeakerRepository{}
	service := NewAvailabilityService(mockBookings, mockSpeakers)

	ctx := context.Background()
	mockSpeakers.On("GetByEmail", ctx, speakerBob.Email).Return(speakerBob, nil).Once()

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	result, err := service.ListOpenSlots(ctx, speakerBob.Email, day, day.AddDate(0, 0, -3))

	assert.NoError(t, err)
	assert.Empty(t, result.OpenSlots)
	mockBookings.AssertNotCalled(t, "ListForSpeakerBetween")
}
