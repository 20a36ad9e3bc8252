package router

import (
	"github.com/deppfellow/user-service/internal/errs"
	"github.com/deppfellow/user-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerUserRoutes registers the read-only user endpoints.
//
// "/users/" would otherwise reach "/:id" with an empty id, so it is pinned
// to the unknown-route answer.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.GET("", h.User.ListUsers)
	users.GET("/", routeNotFound)
	users.GET("/:id", h.User.GetUser)
}

func routeNotFound(c echo.Context) error {
	return errs.ErrRouteNotFound()
}
