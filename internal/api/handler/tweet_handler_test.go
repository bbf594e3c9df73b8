package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/core/domain"
	"github.com/minitweet/twitter-api/internal/core/ports"
)

func sampleTweet(content string) *domain.Tweet {
	return &domain.Tweet{
		ID:        5,
		Content:   content,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		AuthorID:  1,
		Author:    alice(),
	}
}

func TestTweetHandler_Create(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{
		createFn: func(_ context.Context, input ports.CreateTweetInput) (*ports.CreateTweetResult, error) {
			if input.AuthorID != 1 || input.Content != "hello" || input.IdempotencyKey != "k-1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.CreateTweetResult{Tweet: sampleTweet("hello")}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/home/", echo.MIMEApplicationJSON, `{"content":"hello"}`)
	c.Request().Header.Set("Idempotency-Key", "k-1")
	SetCurrentUser(c, alice())

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["updated_at"]; ok {
		t.Fatalf("updated_at must be absent on a new tweet: %+v", resp)
	}
	by, ok := resp["by"].(map[string]any)
	if !ok || by["email"] != "alice@example.com" {
		t.Fatalf("expected author in by, got %+v", resp["by"])
	}
}

func TestTweetHandler_Create_Replay(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{
		createFn: func(context.Context, ports.CreateTweetInput) (*ports.CreateTweetResult, error) {
			return &ports.CreateTweetResult{Tweet: sampleTweet("hello"), AlreadyExisted: true}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/home/", echo.MIMEApplicationJSON, `{"content":"hello"}`)
	SetCurrentUser(c, alice())

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestTweetHandler_Create_Validation(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{})

	long := make([]byte, 257)
	for i := range long {
		long[i] = 'a'
	}
	for _, body := range []string{`{"content":""}`, `{"content":"` + string(long) + `"}`} {
		c, _ := newTestContext(http.MethodPost, "/home/", echo.MIMEApplicationJSON, body)
		SetCurrentUser(c, alice())

		if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
}

func TestTweetHandler_Create_Unauthenticated(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{})
	c, _ := newTestContext(http.MethodPost, "/home/", echo.MIMEApplicationJSON, `{"content":"hi"}`)

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTweetHandler_Update(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{
		updateFn: func(_ context.Context, id int64, content *string) (*domain.Tweet, error) {
			if id != 5 || content == nil || *content != "hello world" {
				t.Fatalf("unexpected update: %d %v", id, content)
			}
			tw := sampleTweet(*content)
			now := time.Now().UTC()
			tw.UpdatedAt = &now
			return tw, nil
		},
	})

	c, rec := newTestContext(http.MethodPut, "/home/5?content=hello+world", "", "")
	c.SetParamNames("tweet_id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["content"] != "hello world" || resp["updated_at"] == nil {
		t.Fatalf("unexpected tweet: %+v", resp)
	}
}

func TestTweetHandler_Update_NoContent(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{
		updateFn: func(_ context.Context, _ int64, content *string) (*domain.Tweet, error) {
			if content != nil {
				t.Fatalf("expected nil content when the parameter is absent")
			}
			return sampleTweet("unchanged"), nil
		},
	})

	c, _ := newTestContext(http.MethodPut, "/home/5", "", "")
	c.SetParamNames("tweet_id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestTweetHandler_Get_NotFound(t *testing.T) {
	h := NewTweetHandler(&stubTweetService{
		getFn: func(context.Context, int64) (*domain.Tweet, error) { return nil, domain.ErrTweetNotFound },
	})

	c, _ := newTestContext(http.MethodGet, "/home/9", "", "")
	c.SetParamNames("tweet_id")
	c.SetParamValues("9")

	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
