package handler

import (
	"time"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

// --- Request types ---

type signupRequest struct {
	Email     string       `json:"email"      validate:"required,email,max=255"`
	FirstName string       `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string       `json:"last_name"  validate:"required,min=2,max=50"`
	Birthday  *domain.Date `json:"birthday,omitempty" swaggertype:"string" example:"1990-05-17"`
	Password  string       `json:"password"   validate:"required,min=8,max=64,bcryptmax"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type updateUserRequest struct {
	FirstName *string `query:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  *string `query:"last_name"  validate:"omitempty,min=2,max=50"`
	Email     *string `query:"email"      validate:"omitempty,email,max=255"`
}

type createTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=256"`
}

type updateTweetRequest struct {
	Content *string `query:"content" validate:"omitempty,min=1,max=256"`
}

// --- Response types ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Birthday  *domain.Date `json:"birthday,omitempty" swaggertype:"string" example:"1990-05-17"`
}

type tweetResponse struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
	By        *userResponse `json:"by"`
}
