package repositories

import (
	"context"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// ProductRepository defines the interface for product data access.
// Ownership is not checked here; callers enforce it.
type ProductRepository interface {
	GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	// GetByID returns nil without an error when the product does not exist.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product, fields ...string) error
	Delete(ctx context.Context, id string) error
}
