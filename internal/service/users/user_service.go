package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/auth"
	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/repository"
	"github.com/google/uuid"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error)
}

type UserService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewUserService(repo repository.UserRepository, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	role := domain.Role(input.Role)
	if role != domain.RoleUser && role != domain.RoleSpeaker {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrBadCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return "", nil, domain.ErrBadCredentials
	}

	token, err := auth.MakeToken(user.Email, user.Role, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

var _ UserUseCase = (*UserService)(nil)
