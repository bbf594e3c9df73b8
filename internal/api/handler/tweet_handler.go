package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/api/metrics"
	"github.com/minitweet/twitter-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

type TweetHandler struct {
	service ports.TweetService
}

func NewTweetHandler(service ports.TweetService) *TweetHandler {
	return &TweetHandler{service: service}
}

// List handles GET /home/.
//
// @Summary      List tweets
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   tweetResponse
// @Failure      401  {object}  map[string]string
// @Router       /home/ [get]
func (h *TweetHandler) List(c echo.Context) error {
	tweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponses(tweets))
}

// Create handles POST /home/. The authenticated user becomes the author.
// A repeated Idempotency-Key returns the original tweet with 200.
//
// @Summary      Post a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Unique key to make the post idempotent"
// @Param        body             body      createTweetRequest  true   "Tweet"
// @Success      200              {object}  tweetResponse  "Replayed"
// @Success      201              {object}  tweetResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      422              {object}  map[string]any
// @Router       /home/ [post]
func (h *TweetHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req createTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateTweetInput{
		Content:        req.Content,
		AuthorID:       user.ID,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.IdempotentReplaysTotal.Inc()
		return c.JSON(http.StatusOK, toTweetResponse(result.Tweet))
	}

	metrics.TweetsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toTweetResponse(result.Tweet))
}

// Get handles GET /home/:tweet_id.
//
// @Summary      Get a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        tweet_id  path      int  true  "Tweet ID"
// @Success      200       {object}  tweetResponse
// @Failure      404       {object}  map[string]string
// @Router       /home/{tweet_id} [get]
func (h *TweetHandler) Get(c echo.Context) error {
	id, err := pathID(c, "tweet_id")
	if err != nil {
		return err
	}

	tweet, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponse(tweet))
}

// Update handles PUT /home/:tweet_id?content=.
//
// @Summary      Edit a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        tweet_id  path      int     true   "Tweet ID"
// @Param        content   query     string  false  "New content"
// @Success      200       {object}  tweetResponse
// @Failure      404       {object}  map[string]string
// @Failure      422       {object}  map[string]any
// @Router       /home/{tweet_id} [put]
func (h *TweetHandler) Update(c echo.Context) error {
	id, err := pathID(c, "tweet_id")
	if err != nil {
		return err
	}

	req := updateTweetRequest{Content: optionalQuery(c, "content")}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.service.Update(c.Request().Context(), id, req.Content)
	if err != nil {
		return err
	}

	if req.Content != nil {
		metrics.TweetsTotal.WithLabelValues("updated").Inc()
	}
	return c.JSON(http.StatusOK, toTweetResponse(tweet))
}

// Delete handles DELETE /home/:tweet_id.
//
// @Summary      Delete a tweet
// @Tags         tweets
// @Security     BearerAuth
// @Param        tweet_id  path  int  true  "Tweet ID"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /home/{tweet_id} [delete]
func (h *TweetHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "tweet_id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.TweetsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusOK)
}
