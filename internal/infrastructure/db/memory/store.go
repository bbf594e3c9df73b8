// Package memory is a process-local entity store used for STORE_DRIVER=memory
// and in tests. It enforces the same constraints as the SQL schema: unique
// email, tweet author must exist, tweets are deleted with their author.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

type Store struct {
	mu          sync.RWMutex
	users       map[int64]domain.User
	tweets      map[int64]domain.Tweet
	nextUserID  int64
	nextTweetID int64
}

func NewStore() *Store {
	return &Store{
		users:  make(map[int64]domain.User),
		tweets: make(map[int64]domain.Tweet),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Tweets returns the tweet repository view of the store.
func (s *Store) Tweets() *TweetRepository { return &TweetRepository{s: s} }

func (s *Store) Ping(context.Context) error { return nil }

type UserRepository struct {
	s *Store
}

func (r *UserRepository) emailTaken(email string, except int64) bool {
	for id, u := range r.s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, 0) {
		return nil, domain.ErrUserExists
	}

	r.s.nextUserID++
	stored := *user
	stored.ID = r.s.nextUserID
	r.s.users[stored.ID] = stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, domain.ErrUserExists
	}

	stored.Profile = user.Profile
	r.s.users[user.ID] = stored
	return &stored, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	for tid, t := range r.s.tweets {
		if t.AuthorID == id {
			delete(r.s.tweets, tid)
		}
	}
	return nil
}

type TweetRepository struct {
	s *Store
}

// joined copies t and attaches its author. Callers hold the read lock.
func (r *TweetRepository) joined(t domain.Tweet) *domain.Tweet {
	if u, ok := r.s.users[t.AuthorID]; ok {
		t.Author = &u
	}
	return &t
}

func (r *TweetRepository) Create(_ context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[tweet.AuthorID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	r.s.nextTweetID++
	stored := *tweet
	stored.ID = r.s.nextTweetID
	stored.Author = nil
	r.s.tweets[stored.ID] = stored
	return r.joined(stored), nil
}

func (r *TweetRepository) FindByID(_ context.Context, id int64) (*domain.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	return r.joined(t), nil
}

func (r *TweetRepository) List(_ context.Context) ([]*domain.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Tweet, 0, len(r.s.tweets))
	for _, t := range r.s.tweets {
		out = append(out, r.joined(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TweetRepository) Update(_ context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.tweets[tweet.ID]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	stored.Content = tweet.Content
	stored.UpdatedAt = tweet.UpdatedAt
	r.s.tweets[stored.ID] = stored
	return r.joined(stored), nil
}

func (r *TweetRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tweets[id]; !ok {
		return domain.ErrTweetNotFound
	}
	delete(r.s.tweets, id)
	return nil
}
