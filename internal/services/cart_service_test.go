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

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults quantity to one", func(t *testing.T) {
		cart := new(MockCartRepository)
		products := new(MockProductRepository)
		service := services.NewCartService(cart, products)

		products.On("GetByID", ctx, "p1").Return(&models.Product{ID: "p1", IsActive: true}, nil).Once()
		cart.On("Add", ctx, mock.MatchedBy(func(item *models.CartItem) bool {
			return item.CustomerID == customer.ID && item.ProductID == "p1" && item.Quantity == 1
		})).Return(&models.CartItem{ID: "c1", CustomerID: customer.ID, ProductID: "p1", Quantity: 1}, nil).Once()

		item, err := service.AddToCart(ctx, customer, models.AddToCartRequest{ProductID: "p1"})
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
		require.NotNil(t, item.Product)
		cart.AssertExpectations(t)
	})

	t.Run("inactive product", func(t *testing.T) {
		products := new(MockProductRepository)
		service := services.NewCartService(new(MockCartRepository), products)
		products.On("GetByID", ctx, "p2").Return(&models.Product{ID: "p2", IsActive: false}, nil).Once()

		_, err := service.AddToCart(ctx, customer, models.AddToCartRequest{ProductID: "p2", Quantity: intPtr(2)})
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run("missing product", func(t *testing.T) {
		products := new(MockProductRepository)
		service := services.NewCartService(new(MockCartRepository), products)
		products.On("GetByID", ctx, "ghost").Return(nil, nil).Once()

		_, err := service.AddToCart(ctx, customer, models.AddToCartRequest{ProductID: "ghost"})
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestCartService_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	cart := new(MockCartRepository)
	service := services.NewCartService(cart, new(MockProductRepository))

	cart.On("GetByID", ctx, "c1").Return(&models.CartItem{ID: "c1", CustomerID: customer.ID, Quantity: 1}, nil)
	cart.On("GetByID", ctx, "missing").Return(nil, nil)
	cart.On("UpdateQuantity", ctx, "c1", 4).Return(&models.CartItem{ID: "c1", CustomerID: customer.ID, Quantity: 4}, nil).Once()
	cart.On("Remove", ctx, "c1").Return(nil).Once()

	intruder := models.Caller{ID: "cust-2", Role: models.RoleCustomer}
	_, err := service.UpdateQuantity(ctx, intruder, "c1", 9)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	assert.True(t, apperrors.Is(service.RemoveItem(ctx, intruder, "c1"), apperrors.KindForbidden))

	_, err = service.UpdateQuantity(ctx, customer, "missing", 1)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	item, err := service.UpdateQuantity(ctx, customer, "c1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	assert.NoError(t, service.RemoveItem(ctx, customer, "c1"))
	cart.AssertExpectations(t)
}

func TestCartService_ClearCart(t *testing.T) {
	ctx := context.Background()
	cart := new(MockCartRepository)
	service := services.NewCartService(cart, new(MockProductRepository))
	cart.On("Clear", ctx, customer.ID).Return(nil).Once()

	assert.NoError(t, service.ClearCart(ctx, customer))
	cart.AssertExpectations(t)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) GetByCustomer(ctx context.Context, customerID string) ([]models.Favorite, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error) {
	args := m.Called(ctx, favorite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, customerID, productID string) error {
	args := m.Called(ctx, customerID, productID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, customerID, productID string) (bool, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Bool(0), args.Error(1)
}

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	favorites := new(MockFavoriteRepository)
	products := new(MockProductRepository)
	service := services.NewFavoriteService(favorites, products)

	products.On("GetByID", ctx, "p1").Return(&models.Product{ID: "p1"}, nil)
	products.On("GetByID", ctx, "ghost").Return(nil, nil)
	favorites.On("Add", ctx, mock.AnythingOfType("*models.Favorite")).Return(&models.Favorite{ID: "f1", CustomerID: customer.ID, ProductID: "p1"}, nil).Once()
	favorites.On("Remove", ctx, customer.ID, "p1").Return(nil).Once()
	favorites.On("Exists", ctx, customer.ID, "p1").Return(false, nil).Once()

	fav, err := service.AddFavorite(ctx, customer, "p1")
	require.NoError(t, err)
	assert.Equal(t, "f1", fav.ID)

	_, err = service.AddFavorite(ctx, customer, "ghost")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	require.NoError(t, service.RemoveFavorite(ctx, customer, "p1"))
	ok, err := service.IsFavorite(ctx, customer, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
	favorites.AssertExpectations(t)
}
