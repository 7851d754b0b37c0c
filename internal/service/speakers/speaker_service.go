package speakers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/repository"
)

type SpeakerUseCase interface {
	List(ctx context.Context) ([]domain.Speaker, error)
	GetByEmail(ctx context.Context, email string) (*domain.Speaker, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Speaker, error)
}

type Cache interface {
	GetSpeakers(ctx context.Context) ([]domain.Speaker, error)
	SetSpeakers(ctx context.Context, speakers []domain.Speaker) error
	InvalidateSpeakers(ctx context.Context) error
}

type SpeakerService struct {
	repo  repository.SpeakerRepository
	users repository.UserRepository
	cache Cache
}

type UpdateProfileInput struct {
	Email             string
	Role              domain.Role
	Expertise         string `json:"expertise"`
	PricePerHourCents int64  `json:"price_per_hour_cents"`
}

func NewSpeakerService(repo repository.SpeakerRepository, users repository.UserRepository, cache Cache) *SpeakerService {
	return &SpeakerService{repo: repo, users: users, cache: cache}
}

func (s *SpeakerService) List(ctx context.Context) ([]domain.Speaker, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSpeakers(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	speakers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if s.cache != nil {
		_ = s.cache.SetSpeakers(ctx, speakers)
	}
	return speakers, nil
}

func (s *SpeakerService) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *SpeakerService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Speaker, error) {
	if input.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.Role != domain.RoleSpeaker {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(input.Expertise) == "" {
		return nil, errors.New("expertise is required")
	}
	if input.PricePerHourCents <= 0 {
		return nil, errors.New("price must be positive")
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	speaker := &domain.Speaker{
		Email:             input.Email,
		Name:              user.Name,
		Expertise:         strings.TrimSpace(input.Expertise),
		PricePerHourCents: input.PricePerHourCents,
	}
	if err := s.repo.UpsertProfile(ctx, speaker); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if s.cache != nil {
		_ = s.cache.InvalidateSpeakers(ctx)
	}
	return speaker, nil
}

var _ SpeakerUseCase = (*SpeakerService)(nil)
