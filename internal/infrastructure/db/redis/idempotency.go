package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps an author's Idempotency-Key to the tweet it created.
// Key format: idem:tweet:<author_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, authorID int64, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, idempotencyKey(authorID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: corrupt value %q: %w", val, err)
	}
	return id, true, nil
}

// Remember stores the mapping unless one already exists and returns the id
// the key maps to. SET NX GET makes the claim and the read one step, so
// concurrent callers agree on the winner (requires Redis 7).
func (s *IdempotencyStore) Remember(ctx context.Context, authorID int64, key string, tweetID int64) (int64, error) {
	prev, err := s.client.SetArgs(ctx, idempotencyKey(authorID, key), tweetID, redis.SetArgs{
		Mode: "NX",
		TTL:  s.ttl,
		Get:  true,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return tweetID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("idempotency remember: %w", err)
	}

	id, err := strconv.ParseInt(prev, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("idempotency remember: corrupt value %q: %w", prev, err)
	}
	return id, nil
}

func idempotencyKey(authorID int64, key string) string {
	return fmt.Sprintf("idem:tweet:%d:%s", authorID, key)
}
