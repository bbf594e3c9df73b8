package ports

import (
	"context"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

// UserRepository persists users. Implementations enforce email uniqueness
// and report it as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user in ascending id order.
	List(ctx context.Context) ([]*domain.User, error)
	// Update overwrites the profile fields of an existing user.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user and, through the foreign key, their tweets.
	Delete(ctx context.Context, id int64) error
}
