package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.emailTaken(user.Email, 0) {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTweetRepo struct {
	users  *stubUserRepo
	tweets map[int64]*domain.Tweet
	nextID int64
}

func newStubTweetRepo(users *stubUserRepo) *stubTweetRepo {
	return &stubTweetRepo{users: users, tweets: make(map[int64]*domain.Tweet)}
}

func (r *stubTweetRepo) withAuthor(t *domain.Tweet) *domain.Tweet {
	clone := *t
	clone.Author = cloneUser(r.users.users[t.AuthorID])
	return &clone
}

func (r *stubTweetRepo) Create(_ context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	if _, ok := r.users.users[tweet.AuthorID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.nextID++
	clone := *tweet
	clone.ID = r.nextID
	r.tweets[clone.ID] = &clone
	return r.withAuthor(&clone), nil
}

func (r *stubTweetRepo) FindByID(_ context.Context, id int64) (*domain.Tweet, error) {
	t, ok := r.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	return r.withAuthor(t), nil
}

func (r *stubTweetRepo) List(_ context.Context) ([]*domain.Tweet, error) {
	out := make([]*domain.Tweet, 0, len(r.tweets))
	for _, t := range r.tweets {
		out = append(out, r.withAuthor(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTweetRepo) Update(_ context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	if _, ok := r.tweets[tweet.ID]; !ok {
		return nil, domain.ErrTweetNotFound
	}
	clone := *tweet
	clone.Author = nil
	r.tweets[clone.ID] = &clone
	return r.withAuthor(&clone), nil
}

func (r *stubTweetRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tweets[id]; !ok {
		return domain.ErrTweetNotFound
	}
	delete(r.tweets, id)
	return nil
}

// plainHasher prefixes the password so tests can tell a digest from plaintext.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (plainHasher) Verify(digest, plaintext string) bool { return digest == "hashed:"+plaintext }

// plainTokens issues "token:<subject>" and accepts nothing else.
type plainTokens struct{}

func (plainTokens) Issue(subject string) (string, error) { return "token:" + subject, nil }

func (plainTokens) Verify(token string) (string, error) {
	subject, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	return subject, nil
}

// stubIdempotency is safe for concurrent use. When lookupBarrier is set,
// Lookup blocks until every expected caller has reached it.
type stubIdempotency struct {
	mu            sync.Mutex
	keys          map[string]int64
	lookupErr     error
	lookupBarrier *sync.WaitGroup
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func idempotencyKey(authorID int64, key string) string {
	return fmt.Sprintf("%d:%s", authorID, key)
}

func (s *stubIdempotency) Lookup(_ context.Context, authorID int64, key string) (int64, bool, error) {
	if s.lookupBarrier != nil {
		s.lookupBarrier.Done()
		s.lookupBarrier.Wait()
	}
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[idempotencyKey(authorID, key)]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, authorID int64, key string, tweetID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyKey(authorID, key)
	if id, ok := s.keys[k]; ok {
		return id, nil
	}
	s.keys[k] = tweetID
	return tweetID, nil
}
