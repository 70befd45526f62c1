package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
)

func TestSubscriptionService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubscriptionRepository)
	service := services.NewSubscriptionService(repo)

	repo.On("Create", ctx, mock.AnythingOfType("*models.Subscription")).Return(nil).Once()

	sub, err := service.CreateSubscription(ctx, customer, models.CreateSubscriptionRequest{VendorID: vendor.ID, PlanType: models.PlanBiweekly})
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	assert.Equal(t, customer.ID, sub.CustomerID)
	assert.Equal(t, []string{}, sub.Preferences.Allergies)

	_, err = service.CreateSubscription(ctx, vendor, models.CreateSubscriptionRequest{VendorID: vendor.ID, PlanType: models.PlanWeekly})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	repo.AssertExpectations(t)
}

func TestSubscriptionService_ListScopedByRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubscriptionRepository)
	service := services.NewSubscriptionService(repo)
	active := true

	repo.On("GetAll", ctx, models.SubscriptionFilter{CustomerID: customer.ID}).Return([]models.Subscription{{ID: "s1"}}, nil).Once()
	repo.On("GetAll", ctx, models.SubscriptionFilter{VendorID: vendor.ID, IsActive: &active}).Return([]models.Subscription{}, nil).Once()

	subs, err := service.ListSubscriptions(ctx, customer, nil)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	_, err = service.ListSubscriptions(ctx, vendor, &active)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_UpdateAndCancel(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubscriptionRepository)
	service := services.NewSubscriptionService(repo)

	stored := &models.Subscription{ID: "s1", CustomerID: customer.ID, VendorID: vendor.ID, PlanType: models.PlanWeekly, IsActive: true}
	repo.On("GetByID", ctx, "s1").Return(stored, nil)
	repo.On("Update", ctx, stored, []string{"plan_type"}).Return(nil).Once()
	repo.On("Cancel", ctx, "s1").Return(nil).Once()

	monthly := models.PlanMonthly
	sub, err := service.UpdateSubscription(ctx, customer, "s1", models.UpdateSubscriptionRequest{PlanType: &monthly})
	require.NoError(t, err)
	assert.Equal(t, models.PlanMonthly, sub.PlanType)

	stranger := models.Caller{ID: "cust-9", Role: models.RoleCustomer}
	_, err = service.UpdateSubscription(ctx, stranger, "s1", models.UpdateSubscriptionRequest{PlanType: &monthly})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	assert.True(t, apperrors.Is(service.CancelSubscription(ctx, stranger, "s1"), apperrors.KindForbidden))

	assert.NoError(t, service.CancelSubscription(ctx, vendor, "s1"))
	repo.AssertExpectations(t)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) GetByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	service := services.NewReviewService(reviews, products)

	products.On("GetByID", ctx, "p1").Return(&models.Product{ID: "p1"}, nil)
	products.On("GetByID", ctx, "ghost").Return(nil, nil)
	reviews.On("GetByProduct", ctx, "p1").Return([]models.Review{{ID: "r1", Rating: 5}}, nil).Once()
	reviews.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.ProductID == "p1" && r.CustomerID == customer.ID && r.Rating == 4
	})).Return(nil).Once()

	list, err := service.ListReviews(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = service.ListReviews(ctx, "ghost")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	review, err := service.CreateReview(ctx, customer, "p1", models.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	reviews.AssertExpectations(t)
}

func TestVendorService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatsRepository)
	service := services.NewVendorService(repo)

	repo.On("VendorStats", ctx, vendor.ID).Return(&models.VendorStats{}, nil).Once()

	stats, err := service.Stats(ctx, vendor)
	require.NoError(t, err)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.ActiveProducts)

	_, err = service.Stats(ctx, customer)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	repo.AssertExpectations(t)
}
