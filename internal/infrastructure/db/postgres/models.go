package postgres

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

type userModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64      `bun:"id,pk,autoincrement"`
	Email        string     `bun:"email,notnull,unique"`
	FirstName    string     `bun:"first_name,notnull"`
	LastName     string     `bun:"last_name,notnull"`
	Birthday     *time.Time `bun:"birthday,type:date"`
	PasswordHash string     `bun:"password_hash,notnull"`
	CreatedAt    time.Time  `bun:"created_at,notnull"`
}

type tweetModel struct {
	bun.BaseModel `bun:"table:tweets,alias:t"`

	ID        int64      `bun:"id,pk,autoincrement"`
	Content   string     `bun:"content,notnull"`
	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt *time.Time `bun:"updated_at"`
	AuthorID  int64      `bun:"author_id,notnull"`

	Author *userModel `bun:"rel:belongs-to,join:author_id=id"`
}

func toUserModel(u *domain.User) *userModel {
	m := &userModel{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if u.Birthday != nil {
		b := u.Birthday.Time
		m.Birthday = &b
	}
	return m
}

func (m *userModel) toDomain() *domain.User {
	u := &domain.User{
		ID: m.ID,
		Profile: domain.Profile{
			Email:     m.Email,
			FirstName: m.FirstName,
			LastName:  m.LastName,
		},
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.Birthday != nil {
		d := domain.NewDate(m.Birthday.Date())
		u.Birthday = &d
	}
	return u
}

func toTweetModel(t *domain.Tweet) *tweetModel {
	return &tweetModel{
		ID:        t.ID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		AuthorID:  t.AuthorID,
	}
}

func (m *tweetModel) toDomain() *domain.Tweet {
	t := &domain.Tweet{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
		AuthorID:  m.AuthorID,
	}
	if m.UpdatedAt != nil {
		u := m.UpdatedAt.UTC()
		t.UpdatedAt = &u
	}
	if m.Author != nil && m.Author.ID != 0 {
		t.Author = m.Author.toDomain()
	}
	return t
}
