package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

type TweetRepository struct {
	db *bun.DB
}

func NewTweetRepository(db *bun.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create inserts the tweet and reloads it with the author joined in.
func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	m := toTweetModel(tweet)

	_, err := r.db.NewInsert().
		Model(m).
		ExcludeColumn("updated_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert tweet: %w", err)
	}

	return r.FindByID(ctx, m.ID)
}

func (r *TweetRepository) FindByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	m := new(tweetModel)
	err := r.db.NewSelect().
		Model(m).
		Relation("Author").
		Where("t.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("find tweet: %w", err)
	}
	return m.toDomain(), nil
}

func (r *TweetRepository) List(ctx context.Context) ([]*domain.Tweet, error) {
	var models []tweetModel
	err := r.db.NewSelect().
		Model(&models).
		Relation("Author").
		Order("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}

	tweets := make([]*domain.Tweet, 0, len(models))
	for i := range models {
		tweets = append(tweets, models[i].toDomain())
	}
	return tweets, nil
}

func (r *TweetRepository) Update(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	res, err := r.db.NewUpdate().
		Model(toTweetModel(tweet)).
		Column("content", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	if err := expectRow(res, domain.ErrTweetNotFound); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*tweetModel)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	return expectRow(res, domain.ErrTweetNotFound)
}
