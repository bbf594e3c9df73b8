package domain

import "time"

// Tweet is a short message owned by exactly one user.
type Tweet struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	AuthorID  int64
	// Author is filled by the store's explicit join; nil when not loaded.
	Author *User
}
