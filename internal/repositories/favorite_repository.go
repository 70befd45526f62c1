package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	GetByCustomer(ctx context.Context, customerID string) ([]models.Favorite, error)
	// Add is idempotent per (customer, product) pair.
	Add(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error)
	Remove(ctx context.Context, customerID, productID string) error
	Exists(ctx context.Context, customerID, productID string) (bool, error)
}

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{db: db}
}

// GetByCustomer returns the customer's favorites with products, newest first.
func (r *GORMFavoriteRepository) GetByCustomer(ctx context.Context, customerID string) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, translate(err, "list favorites")
	}
	return favorites, nil
}

func (r *GORMFavoriteRepository) Add(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error) {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}

	var stored models.Favorite
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(favorite).Error
		if err != nil {
			return err
		}
		return tx.Where("customer_id = ? AND product_id = ?", favorite.CustomerID, favorite.ProductID).First(&stored).Error
	})
	if err != nil {
		return nil, translate(err, "add favorite")
	}
	return &stored, nil
}

// Remove deletes the pair if present; removing a missing favorite is a no-op.
func (r *GORMFavoriteRepository) Remove(ctx context.Context, customerID, productID string) error {
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&models.Favorite{}).Error
	return translate(err, "remove favorite")
}

func (r *GORMFavoriteRepository) Exists(ctx context.Context, customerID, productID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "check favorite")
	}
	return n > 0, nil
}
