package repositories

import (
	"context"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll returns matching orders newest first, each with its items and
	// their products attached.
	GetAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	// GetByID returns nil without an error when the order does not exist.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// Create inserts the order and then its items with OrderID backfilled.
	// The returned order does not carry the items.
	Create(ctx context.Context, order *models.Order, items []models.OrderItem) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}
