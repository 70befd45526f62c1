package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// SubscriptionRepository defines the interface for subscription data access.
type SubscriptionRepository interface {
	GetAll(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error)
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
	Create(ctx context.Context, subscription *models.Subscription) error
	Update(ctx context.Context, subscription *models.Subscription, fields ...string) error
	// Cancel deactivates the subscription; the row is kept.
	Cancel(ctx context.Context, id string) error
}

// GORMSubscriptionRepository is a GORM implementation of SubscriptionRepository.
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

func NewGORMSubscriptionRepository(db *gorm.DB) *GORMSubscriptionRepository {
	return &GORMSubscriptionRepository{db: db}
}

func (r *GORMSubscriptionRepository) GetAll(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error) {
	query := r.db.WithContext(ctx).Model(&models.Subscription{})
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	subscriptions := []models.Subscription{}
	if err := query.Order("created_at DESC").Find(&subscriptions).Error; err != nil {
		return nil, translate(err, "list subscriptions")
	}
	return subscriptions, nil
}

func (r *GORMSubscriptionRepository) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.WithContext(ctx).First(&subscription, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translate(err, "get subscription")
	}
	return &subscription, nil
}

func (r *GORMSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.New().String()
	}
	return translate(r.db.WithContext(ctx).Create(subscription).Error, "create subscription")
}

func (r *GORMSubscriptionRepository) Update(ctx context.Context, subscription *models.Subscription, fields ...string) error {
	subscription.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(subscription).Select(append(fields, "updated_at")).Updates(subscription)
	if res.Error != nil {
		return translate(res.Error, "update subscription")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("subscription with ID %s not found", subscription.ID)
	}
	return nil
}

func (r *GORMSubscriptionRepository) Cancel(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return translate(res.Error, "cancel subscription")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("subscription with ID %s not found", id)
	}
	return nil
}
