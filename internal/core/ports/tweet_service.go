package ports

import (
	"context"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

// CreateTweetInput carries a new tweet from the transport layer.
type CreateTweetInput struct {
	Content  string
	AuthorID int64
	// IdempotencyKey is optional; a repeated key from the same author replays
	// the first result instead of posting twice.
	IdempotencyKey string
}

// CreateTweetResult is returned by TweetService.Create.
type CreateTweetResult struct {
	Tweet *domain.Tweet
	// AlreadyExisted is true when the Idempotency-Key matched an earlier post.
	AlreadyExisted bool
}

type TweetService interface {
	Create(ctx context.Context, input CreateTweetInput) (*CreateTweetResult, error)
	List(ctx context.Context) ([]*domain.Tweet, error)
	Get(ctx context.Context, id int64) (*domain.Tweet, error)
	// Update replaces the content when it is non-nil and stamps UpdatedAt.
	Update(ctx context.Context, id int64, content *string) (*domain.Tweet, error)
	Delete(ctx context.Context, id int64) error
}

// IdempotencyStore remembers which tweet a (author, key) pair produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, authorID int64, key string) (tweetID int64, found bool, err error)
	// Remember maps the key to tweetID unless a mapping already exists, and
	// returns the tweet id the key maps to afterwards. The first writer wins.
	Remember(ctx context.Context, authorID int64, key string, tweetID int64) (int64, error)
}
