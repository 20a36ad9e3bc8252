package handler

import (
	"github.com/deppfellow/user-service/internal/server"
	"github.com/deppfellow/user-service/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// This keeps router setup clean: you pass one object around instead of many.
type Handlers struct {
	User   *UserHandler   // User serves GET /users and GET /users/:id.
	Health *HealthHandler // Health serves the opt-in /status endpoint.
}

// NewHandlers constructs the handler container.
//
// Parameters:
// - s: application container (logger/config/etc.)
// - services: business layer container
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		User:   NewUserHandler(s, services.User),
		Health: NewHealthHandler(s),
	}
}
