package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByCustomer(ctx context.Context, customerID string) ([]models.CartItem, error)
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	// Add merges item into the customer's cart: an existing
	// (customer, product) row has its quantity increased instead of a
	// second row being inserted.
	Add(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context, customerID string) error
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByCustomer returns the customer's cart lines with their products.
func (r *GORMCartRepository) GetByCustomer(ctx context.Context, customerID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list cart items")
	}
	return items, nil
}

func (r *GORMCartRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translate(err, "get cart item")
	}
	return &item, nil
}

// Add runs a single INSERT ... ON CONFLICT DO UPDATE so concurrent adds of
// the same product cannot produce duplicate rows.
func (r *GORMCartRepository) Add(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	var merged models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(item).Error
		if err != nil {
			return err
		}
		if err := tx.Where("customer_id = ? AND product_id = ?", item.CustomerID, item.ProductID).First(&merged).Error; err != nil {
			return err
		}
		if merged.Quantity > models.MaxCartQuantity {
			return apperrors.Validation("Validation failed", map[string]string{
				"quantity": fmt.Sprintf("Cart quantity cannot exceed %d", models.MaxCartQuantity),
			})
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "add to cart")
	}
	return &merged, nil
}

func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return nil, translate(res.Error, "update cart item")
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("cart item with ID %s not found", id)
	}
	return r.GetByID(ctx, id)
}

func (r *GORMCartRepository) Remove(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "remove cart item")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item with ID %s not found", id)
	}
	return nil
}

// Clear deletes every cart line of the customer.
func (r *GORMCartRepository) Clear(ctx context.Context, customerID string) error {
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
	return translate(err, "clear cart")
}
