package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/core/domain"
	"github.com/minitweet/twitter-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, reg domain.Registration) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) Identify(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	updateFn func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return s.listFn(ctx) }

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, update)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error { return s.deleteFn(ctx, id) }

type stubTweetService struct {
	createFn func(ctx context.Context, input ports.CreateTweetInput) (*ports.CreateTweetResult, error)
	getFn    func(ctx context.Context, id int64) (*domain.Tweet, error)
	updateFn func(ctx context.Context, id int64, content *string) (*domain.Tweet, error)
}

func (s *stubTweetService) Create(ctx context.Context, input ports.CreateTweetInput) (*ports.CreateTweetResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubTweetService) List(context.Context) ([]*domain.Tweet, error) { return nil, nil }

func (s *stubTweetService) Get(ctx context.Context, id int64) (*domain.Tweet, error) {
	return s.getFn(ctx, id)
}

func (s *stubTweetService) Update(ctx context.Context, id int64, content *string) (*domain.Tweet, error) {
	return s.updateFn(ctx, id, content)
}

func (s *stubTweetService) Delete(context.Context, int64) error { return nil }

// newTestContext builds an echo context with the validator installed.
func newTestContext(method, target, contentType, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func alice() *domain.User {
	return &domain.User{
		ID:           1,
		Profile:      domain.Profile{Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"},
		PasswordHash: "secret-hash",
	}
}
