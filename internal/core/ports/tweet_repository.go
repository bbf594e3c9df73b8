package ports

import (
	"context"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

// TweetRepository persists tweets. Reads join the author explicitly so the
// returned tweets always carry Author.
type TweetRepository interface {
	// Create inserts the tweet. An unknown AuthorID yields domain.ErrUserNotFound.
	Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error)
	FindByID(ctx context.Context, id int64) (*domain.Tweet, error)
	List(ctx context.Context) ([]*domain.Tweet, error)
	// Update overwrites content and updated_at.
	Update(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error)
	Delete(ctx context.Context, id int64) error
}
