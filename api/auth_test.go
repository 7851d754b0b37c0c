package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/Domenick1991/speakerdesk/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, input users.LoginInput) (string, *domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/auth/register",
		jsonBody(`{"email":"alice@example.com","name":"Alice","password":"correcthorse","role":"user"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), users.RegisterInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correcthorse",
		Role:     "user",
	}).Return(&domain.User{Email: "alice@example.com", Name: "Alice", Role: domain.RoleUser}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response userResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", response.Email)
	assert.Equal(t, "user", response.Role)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_DuplicateEmail(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/auth/register",
		jsonBody(`{"email":"alice@example.com","name":"Alice","password":"correcthorse","role":"user"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), mock.AnythingOfType("users.RegisterInput")).
		Return(nil, domain.ErrEmailTaken)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/auth/login",
		jsonBody(`{"email":"alice@example.com","password":"correcthorse"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), users.LoginInput{
		Email:    "alice@example.com",
		Password: "correcthorse",
	}).Return("signed-token", &domain.User{Email: "alice@example.com", Name: "Alice", Role: domain.RoleUser}, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, "alice@example.com", response.User.Email)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_login_BadCredentials(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/auth/login",
		jsonBody(`{"email":"alice@example.com","password":"wrong"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), mock.AnythingOfType("users.LoginInput")).
		Return("", nil, domain.ErrBadCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
