package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

type TweetRepository struct {
	tweets *mongo.Collection
	users  *mongo.Collection
	ids    *sequence
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{
		tweets: db.Collection(collectionTweets),
		users:  db.Collection(collectionUsers),
		ids:    newSequence(db, collectionTweets),
	}
}

type tweetDocument struct {
	ID        int64         `bson:"_id"`
	Content   string        `bson:"content"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt *time.Time    `bson:"updated_at,omitempty"`
	AuthorID  int64         `bson:"author_id"`
	Author    *userDocument `bson:"author,omitempty"`
}

func (d tweetDocument) toDomain() *domain.Tweet {
	t := &domain.Tweet{
		ID:        d.ID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
		AuthorID:  d.AuthorID,
	}
	if d.UpdatedAt != nil {
		u := d.UpdatedAt.UTC()
		t.UpdatedAt = &u
	}
	if d.Author != nil {
		t.Author = d.Author.toDomain()
	}
	return t
}

// withAuthor is the aggregation tail that joins each tweet to its author.
// Tweets whose author is gone are dropped rather than returned with a nil
// author.
func withAuthor() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$author",
			"preserveNullAndEmptyArrays": false,
		}}},
	}
}

// Create checks the author exists before inserting, since Mongo has no
// foreign keys.
func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.users.CountDocuments(ctx, bson.M{"_id": tweet.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("check author: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrUserNotFound
	}

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := tweetDocument{
		ID:        id,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
		AuthorID:  tweet.AuthorID,
	}
	if _, err := r.tweets.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}

	created, err := r.FindByID(ctx, id)
	if errors.Is(err, domain.ErrTweetNotFound) {
		// The author was deleted between the check and the insert.
		if _, err := r.tweets.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			return nil, fmt.Errorf("drop orphan tweet: %w", err)
		}
		return nil, domain.ErrUserNotFound
	}
	return created, err
}

func (r *TweetRepository) FindByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	tweets, err := r.aggregate(ctx, bson.D{{Key: "$match", Value: bson.M{"_id": id}}})
	if err != nil {
		return nil, err
	}
	if len(tweets) == 0 {
		return nil, domain.ErrTweetNotFound
	}
	return tweets[0], nil
}

func (r *TweetRepository) List(ctx context.Context) ([]*domain.Tweet, error) {
	return r.aggregate(ctx, bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}})
}

func (r *TweetRepository) aggregate(ctx context.Context, head bson.D) ([]*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{head}, withAuthor()...)
	cur, err := r.tweets.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate tweets: %w", err)
	}

	var docs []tweetDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}

	tweets := make([]*domain.Tweet, 0, len(docs))
	for _, d := range docs {
		tweets = append(tweets, d.toDomain())
	}
	return tweets, nil
}

func (r *TweetRepository) Update(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.tweets.UpdateOne(ctx,
		bson.M{"_id": tweet.ID},
		bson.M{"$set": bson.M{"content": tweet.Content, "updated_at": tweet.UpdatedAt}},
	)
	if err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTweetNotFound
	}
	return tweet, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.tweets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTweetNotFound
	}
	return nil
}
