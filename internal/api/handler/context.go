package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

const currentUserKey = "current_user"

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the user injected by the auth middleware. A missing
// user means the route was mounted without the middleware.
func CurrentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(currentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// optionalQuery returns a pointer to the query value, or nil when the
// parameter is absent. An empty value counts as present.
func optionalQuery(c echo.Context, name string) *string {
	params := c.QueryParams()
	if !params.Has(name) {
		return nil
	}
	v := params.Get(name)
	return &v
}
