package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/minitweet/twitter-api/internal/core/domain"
	"github.com/minitweet/twitter-api/internal/core/ports"
)

type TweetService struct {
	repo        ports.TweetRepository
	idempotency ports.IdempotencyStore
	log         zerolog.Logger
}

// NewTweetService returns a TweetService. idempotency may be nil, which
// disables Idempotency-Key replays.
func NewTweetService(repo ports.TweetRepository, idempotency ports.IdempotencyStore, log zerolog.Logger) *TweetService {
	return &TweetService{repo: repo, idempotency: idempotency, log: log}
}

// Create posts a new tweet. If an idempotency key is provided and already
// seen for this author, the earlier tweet is returned without side effects.
func (s *TweetService) Create(ctx context.Context, input ports.CreateTweetInput) (*ports.CreateTweetResult, error) {
	if existing := s.replay(ctx, input); existing != nil {
		s.log.Info().Str("idempotency_key", input.IdempotencyKey).Int64("tweet_id", existing.ID).Msg("idempotent replay")
		return &ports.CreateTweetResult{Tweet: existing, AlreadyExisted: true}, nil
	}

	tweet := &domain.Tweet{
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
		AuthorID:  input.AuthorID,
	}

	created, err := s.repo.Create(ctx, tweet)
	if err != nil {
		return nil, err
	}

	if s.idempotency != nil && input.IdempotencyKey != "" {
		winner, err := s.idempotency.Remember(ctx, input.AuthorID, input.IdempotencyKey, created.ID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		case winner != created.ID:
			if existing := s.yield(ctx, created.ID, winner); existing != nil {
				s.log.Info().Str("idempotency_key", input.IdempotencyKey).Int64("tweet_id", existing.ID).Msg("idempotent replay after concurrent post")
				return &ports.CreateTweetResult{Tweet: existing, AlreadyExisted: true}, nil
			}
		}
	}

	s.log.Info().Int64("tweet_id", created.ID).Int64("author_id", created.AuthorID).Msg("tweet created")
	return &ports.CreateTweetResult{Tweet: created}, nil
}

// replay returns the tweet previously created under the same key, or nil.
func (s *TweetService) replay(ctx context.Context, input ports.CreateTweetInput) *domain.Tweet {
	if s.idempotency == nil || input.IdempotencyKey == "" {
		return nil
	}

	id, found, err := s.idempotency.Lookup(ctx, input.AuthorID, input.IdempotencyKey)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, posting anyway")
		return nil
	}
	if !found {
		return nil
	}

	tweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Int64("tweet_id", id).Msg("failed to load replayed tweet")
		}
		return nil
	}
	return tweet
}

// yield drops the tweet that lost a concurrent idempotency claim and returns
// the winner. If the winner cannot be loaded the loser is kept and nil is
// returned.
func (s *TweetService) yield(ctx context.Context, loserID, winnerID int64) *domain.Tweet {
	winner, err := s.repo.FindByID(ctx, winnerID)
	if err != nil {
		s.log.Warn().Err(err).Int64("tweet_id", winnerID).Msg("failed to load winning tweet, keeping duplicate")
		return nil
	}
	if err := s.repo.Delete(ctx, loserID); err != nil {
		s.log.Warn().Err(err).Int64("tweet_id", loserID).Msg("failed to drop duplicate tweet")
		return nil
	}
	return winner
}

func (s *TweetService) List(ctx context.Context) ([]*domain.Tweet, error) {
	return s.repo.List(ctx)
}

func (s *TweetService) Get(ctx context.Context, id int64) (*domain.Tweet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TweetService) Update(ctx context.Context, id int64, content *string) (*domain.Tweet, error) {
	tweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return tweet, nil
	}

	now := time.Now().UTC()
	tweet.Content = *content
	tweet.UpdatedAt = &now

	updated, err := s.repo.Update(ctx, tweet)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("tweet_id", id).Msg("tweet updated")
	return updated, nil
}

func (s *TweetService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("tweet_id", id).Msg("tweet deleted")
	return nil
}
