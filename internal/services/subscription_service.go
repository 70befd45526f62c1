package services

import (
	"context"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
)

// SubscriptionService manages recurring boxes between customers and vendors.
type SubscriptionService struct {
	repo repositories.SubscriptionRepository
}

func NewSubscriptionService(repo repositories.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

// ListSubscriptions is scoped like orders: customers see theirs, vendors see
// the ones placed with them. isActive nil lists both states.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, caller models.Caller, isActive *bool) ([]models.Subscription, error) {
	filter := models.SubscriptionFilter{IsActive: isActive}
	if caller.IsVendor() {
		filter.VendorID = caller.ID
	} else {
		filter.CustomerID = caller.ID
	}

	subs, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, internalError("Failed to fetch subscriptions", err)
	}
	return subs, nil
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, caller models.Caller, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if req.VendorID == caller.ID {
		return nil, apperrors.Validation("Validation failed", map[string]string{"vendorId": "You cannot subscribe to yourself"})
	}

	sub := &models.Subscription{
		CustomerID:       caller.ID,
		VendorID:         req.VendorID,
		PlanType:         req.PlanType,
		Preferences:      models.Preferences{Categories: []string{}, Allergies: []string{}},
		IsActive:         true,
		NextDeliveryDate: req.NextDeliveryDate,
	}
	if req.Preferences != nil {
		sub.Preferences = *req.Preferences
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, internalError("Failed to create subscription", err)
	}
	return sub, nil
}

// UpdateSubscription patches the allow-listed fields. Either party of the
// subscription may update it.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, caller models.Caller, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	sub, err := s.ownedSubscription(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var fields []string
	if req.PlanType != nil {
		sub.PlanType = *req.PlanType
		fields = append(fields, "plan_type")
	}
	if req.Preferences != nil {
		sub.Preferences = *req.Preferences
		fields = append(fields, "preferences")
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
		fields = append(fields, "is_active")
	}
	if req.NextDeliveryDate != nil {
		sub.NextDeliveryDate = req.NextDeliveryDate
		fields = append(fields, "next_delivery_date")
	}
	if len(fields) == 0 {
		return sub, nil
	}

	if err := s.repo.Update(ctx, sub, fields...); err != nil {
		return nil, internalError("Failed to update subscription", err)
	}
	return sub, nil
}

// CancelSubscription deactivates the subscription. The row is kept.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, caller models.Caller, id string) error {
	if _, err := s.ownedSubscription(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		return internalError("Failed to cancel subscription", err)
	}
	return nil
}

func (s *SubscriptionService) ownedSubscription(ctx context.Context, caller models.Caller, id string) (*models.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch subscription", err)
	}
	if sub == nil {
		return nil, apperrors.NotFound("Subscription not found")
	}
	if sub.CustomerID != caller.ID && sub.VendorID != caller.ID {
		return nil, apperrors.Forbidden("You can only change your own subscriptions")
	}
	return sub, nil
}
