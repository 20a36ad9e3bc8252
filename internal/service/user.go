package service

import (
	"fmt"

	"github.com/deppfellow/user-service/internal/middleware"
	"github.com/deppfellow/user-service/internal/model/user"
	"github.com/deppfellow/user-service/internal/repository"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/labstack/echo/v4"
)

// UserService resolves user records through a UserRepository.
type UserService struct {
	server   *server.Server
	userRepo repository.UserRepository
}

// NewUserService constructs a UserService over userRepo.
func NewUserService(s *server.Server, userRepo repository.UserRepository) *UserService {
	return &UserService{
		server:   s,
		userRepo: userRepo,
	}
}

// ListUsers returns the sample user list.
func (s *UserService) ListUsers(c echo.Context) ([]user.User, error) {
	logger := middleware.GetLogger(c)

	users, err := s.userRepo.ListUsers(c.Request().Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("list users: %w", err)
	}

	logger.Debug().Int("count", len(users)).Msg("listed users")

	return users, nil
}

// GetUser returns the record for id.
func (s *UserService) GetUser(c echo.Context, id int64) (*user.User, error) {
	logger := middleware.GetLogger(c)

	u, err := s.userRepo.GetUserByID(c.Request().Context(), id)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	logger.Debug().Int64("user_id", id).Msg("resolved user")

	return u, nil
}
