package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByProduct(ctx context.Context, productID string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// GetByProduct returns the product's reviews with their authors, newest first.
func (r *GORMReviewRepository) GetByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err, "list reviews")
	}
	return reviews, nil
}

func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error, "create review")
}
