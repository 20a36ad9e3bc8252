package handler

import (
	"net/http"

	"github.com/deppfellow/user-service/internal/model/user"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/deppfellow/user-service/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the user endpoints.
type UserHandler struct {
	Handler
	userService *service.UserService
}

// NewUserHandler constructs a UserHandler backed by userService.
func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// ListUsers serves GET /users: the fixed sample list.
func (h *UserHandler) ListUsers(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, req *user.ListUsersRequest) ([]user.User, error) {
			return h.userService.ListUsers(c)
		},
		http.StatusOK,
		func() *user.ListUsersRequest { return &user.ListUsersRequest{} },
	)(c)
}

// GetUser serves GET /users/:id: a record synthesized from the id.
//
// An id without a leading digit run is rejected with 400 "invalid id".
func (h *UserHandler) GetUser(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, req *user.GetUserRequest) (*user.User, error) {
			return h.userService.GetUser(c, req.UserID())
		},
		http.StatusOK,
		func() *user.GetUserRequest { return &user.GetUserRequest{} },
	)(c)
}
