package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /user/.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Router       /user/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /user/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PUT /user/:id. Only the query parameters that are present
// are changed.
//
// @Summary      Update a user
// @Tags         users
// @Produce      json
// @Param        id          path      int     true   "User ID"
// @Param        first_name  query     string  false  "First name"
// @Param        last_name   query     string  false  "Last name"
// @Param        email       query     string  false  "Email"
// @Success      200         {object}  userResponse
// @Failure      404         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Failure      422         {object}  map[string]any
// @Router       /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req := updateUserRequest{
		FirstName: optionalQuery(c, "first_name"),
		LastName:  optionalQuery(c, "last_name"),
		Email:     optionalQuery(c, "email"),
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), id, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /user/:id. The user's tweets go with it.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id   path  int  true  "User ID"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
