package repository

import (
	"context"

	"github.com/deppfellow/user-service/internal/middleware"
	"github.com/deppfellow/user-service/internal/model/user"
)

// UserRepository is the lookup seam for user records.
type UserRepository interface {
	// ListUsers returns the users of the listing endpoint, in order.
	ListUsers(ctx context.Context) ([]user.User, error)

	// GetUserByID returns the user with the given id.
	GetUserByID(ctx context.Context, id int64) (*user.User, error)
}

// SampleUserRepository serves the fixed sample list and synthesizes a
// record for any id. It never fails and keeps no state, so it is safe for
// concurrent use.
type SampleUserRepository struct{}

// NewSampleUserRepository constructs the in-memory repository.
func NewSampleUserRepository() *SampleUserRepository {
	return &SampleUserRepository{}
}

func (r *SampleUserRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	return user.Samples(), nil
}

func (r *SampleUserRepository) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	u := user.Synthesize(id)

	middleware.LoggerFromContext(ctx).Debug().
		Int64("user_id", id).
		Msg("synthesized user record")

	return &u, nil
}
