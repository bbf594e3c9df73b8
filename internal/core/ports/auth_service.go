package ports

import (
	"context"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	// Authenticate checks the password and returns a bearer token for the email.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// Identify resolves a bearer token to the user it was issued for.
	Identify(ctx context.Context, token string) (*domain.User, error)
}
