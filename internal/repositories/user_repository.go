package repositories

import (
	"context"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// GetByID returns nil without an error when the user does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User, fields ...string) error
}
