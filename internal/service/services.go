package service

import (
	"github.com/deppfellow/user-service/internal/repository"
	"github.com/deppfellow/user-service/internal/server"
)

// Services groups every business service so handlers get one dependency.
type Services struct {
	User *UserService
}

// NewServices builds every service from the repository container.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		User: NewUserService(s, repos.Users),
	}
}
