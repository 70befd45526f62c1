package services

import (
	"context"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
)

// CartService manages the caller's own cart.
type CartService struct {
	cart     repositories.CartRepository
	products repositories.ProductRepository
}

func NewCartService(cart repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{cart: cart, products: products}
}

func (s *CartService) GetCart(ctx context.Context, caller models.Caller) ([]models.CartItem, error) {
	items, err := s.cart.GetByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, internalError("Failed to fetch cart", err)
	}
	return items, nil
}

// AddToCart adds req.Quantity (default 1) of an active product. Adding a
// product already in the cart increases that line's quantity.
func (s *CartService) AddToCart(ctx context.Context, caller models.Caller, req models.AddToCartRequest) (*models.CartItem, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, internalError("Failed to fetch product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}
	if !product.IsActive {
		return nil, apperrors.Validation("Product is not available", map[string]string{"productId": "Product is not active"})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := s.cart.Add(ctx, &models.CartItem{
		CustomerID:      caller.ID,
		ProductID:       product.ID,
		Quantity:        quantity,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return nil, internalError("Failed to add to cart", err)
	}
	item.Product = product
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, caller models.Caller, id string, quantity int) (*models.CartItem, error) {
	if _, err := s.ownedItem(ctx, caller, id); err != nil {
		return nil, err
	}
	item, err := s.cart.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, internalError("Failed to update cart item", err)
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, caller models.Caller, id string) error {
	if _, err := s.ownedItem(ctx, caller, id); err != nil {
		return err
	}
	if err := s.cart.Remove(ctx, id); err != nil {
		return internalError("Failed to remove cart item", err)
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, caller models.Caller) error {
	if err := s.cart.Clear(ctx, caller.ID); err != nil {
		return internalError("Failed to clear cart", err)
	}
	return nil
}

func (s *CartService) ownedItem(ctx context.Context, caller models.Caller, id string) (*models.CartItem, error) {
	item, err := s.cart.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch cart item", err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Cart item not found")
	}
	if item.CustomerID != caller.ID {
		return nil, apperrors.Forbidden("Cart item belongs to another customer")
	}
	return item, nil
}

// FavoriteService manages the caller's favorite products.
type FavoriteService struct {
	favorites repositories.FavoriteRepository
	products  repositories.ProductRepository
}

func NewFavoriteService(favorites repositories.FavoriteRepository, products repositories.ProductRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products}
}

func (s *FavoriteService) GetFavorites(ctx context.Context, caller models.Caller) ([]models.Favorite, error) {
	favorites, err := s.favorites.GetByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, internalError("Failed to fetch favorites", err)
	}
	return favorites, nil
}

// AddFavorite is idempotent: favoriting twice returns the existing row.
func (s *FavoriteService) AddFavorite(ctx context.Context, caller models.Caller, productID string) (*models.Favorite, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, internalError("Failed to fetch product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}

	favorite, err := s.favorites.Add(ctx, &models.Favorite{CustomerID: caller.ID, ProductID: productID})
	if err != nil {
		return nil, internalError("Failed to add favorite", err)
	}
	return favorite, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, caller models.Caller, productID string) error {
	if err := s.favorites.Remove(ctx, caller.ID, productID); err != nil {
		return internalError("Failed to remove favorite", err)
	}
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, caller models.Caller, productID string) (bool, error) {
	ok, err := s.favorites.Exists(ctx, caller.ID, productID)
	if err != nil {
		return false, internalError("Failed to check favorite", err)
	}
	return ok, nil
}
