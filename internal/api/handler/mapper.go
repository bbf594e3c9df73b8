package handler

import (
	"github.com/minitweet/twitter-api/internal/core/domain"
)

func (r signupRequest) toRegistration() domain.Registration {
	return domain.Registration{
		Profile: domain.Profile{
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Birthday:  r.Birthday,
		},
		Password: r.Password,
	}
}

func (r updateUserRequest) toUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Birthday:  u.Birthday,
	}
}

func toUserResponses(users []*domain.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toTweetResponse(t *domain.Tweet) *tweetResponse {
	return &tweetResponse{
		ID:        t.ID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		By:        toUserResponse(t.Author),
	}
}

func toTweetResponses(tweets []*domain.Tweet) []*tweetResponse {
	out := make([]*tweetResponse, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, toTweetResponse(t))
	}
	return out
}
