package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
	}
}

// ListProducts returns the products matching filter. The caller decides the
// isActive default.
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, internalError("Failed to fetch products", err)
	}
	return products, nil
}

// ListVendorProducts returns every product of the calling vendor, active or
// not.
func (s *ProductService) ListVendorProducts(ctx context.Context, caller models.Caller) ([]models.Product, error) {
	if err := requireVendor(caller, "list their products"); err != nil {
		return nil, err
	}
	return s.ListProducts(ctx, models.ProductFilter{VendorID: caller.ID})
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

// CreateProduct creates a product owned by the calling vendor. New products
// are active unless the input says otherwise.
func (s *ProductService) CreateProduct(ctx context.Context, caller models.Caller, input models.ProductInput) (*models.Product, error) {
	if err := requireVendor(caller, "create products"); err != nil {
		return nil, err
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"name": "Field 'name' is required"})
	}
	if input.Price == nil {
		return nil, apperrors.Validation("Validation failed", map[string]string{"price": "Field 'price' is required"})
	}

	product := &models.Product{
		VendorID: caller.ID,
		IsActive: true,
		Tags:     []string{},
		Dietary:  []string{},
	}
	if _, err := s.apply(ctx, product, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, internalError("Failed to create product", err)
	}
	return product, nil
}

// UpdateProduct patches the allow-listed fields of a product owned by the
// caller. VendorID is never changed.
func (s *ProductService) UpdateProduct(ctx context.Context, caller models.Caller, id string, input models.ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, caller, id, "update")
	if err != nil {
		return nil, err
	}

	fields, err := s.apply(ctx, product, input)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return product, nil
	}

	if err := s.repo.Update(ctx, product, fields...); err != nil {
		return nil, internalError("Failed to update product", err)
	}
	return product, nil
}

// DeleteProduct deletes a product owned by the caller.
func (s *ProductService) DeleteProduct(ctx context.Context, caller models.Caller, id string) error {
	if _, err := s.ownedProduct(ctx, caller, id, "delete"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError("Failed to delete product", err)
	}
	return nil
}

// CheckOwnership fails unless the product exists and belongs to the caller.
func (s *ProductService) CheckOwnership(ctx context.Context, caller models.Caller, id string) error {
	_, err := s.ownedProduct(ctx, caller, id, "update")
	return err
}

func (s *ProductService) ownedProduct(ctx context.Context, caller models.Caller, id, action string) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.VendorID != caller.ID {
		return nil, apperrors.Forbidden("You can only %s your own products", action)
	}
	return product, nil
}

// apply copies the non-nil fields of input onto product and returns the
// column names it touched.
func (s *ProductService) apply(ctx context.Context, product *models.Product, input models.ProductInput) ([]string, error) {
	var fields []string

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.Validation("Validation failed", map[string]string{"name": "Field 'name' must not be empty"})
		}
		product.Name = name
		fields = append(fields, "name")
	}
	if input.Description != nil {
		product.Description = *input.Description
		fields = append(fields, "description")
	}
	if input.Price != nil {
		if !input.Price.GreaterThan(decimal.Zero) {
			return nil, apperrors.Validation("Validation failed", map[string]string{"price": "Field 'price' must be greater than 0"})
		}
		product.Price = input.Price.Round(2)
		fields = append(fields, "price")
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
		fields = append(fields, "category_id")
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
		fields = append(fields, "image_url")
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
		fields = append(fields, "stock")
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
		fields = append(fields, "is_active")
	}
	if input.Tags != nil {
		product.Tags = input.Tags
		fields = append(fields, "tags")
	}
	if input.PrepTimeMinutes != nil {
		product.PrepTimeMinutes = input.PrepTimeMinutes
		fields = append(fields, "prep_time_minutes")
	}
	if input.Dietary != nil {
		product.Dietary = input.Dietary
		fields = append(fields, "dietary")
	}
	return fields, nil
}

func (s *ProductService) checkCategory(ctx context.Context, id string) error {
	if s.categories == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return internalError("Failed to fetch category", err)
	}
	if category == nil {
		return apperrors.Validation("Validation failed", map[string]string{"categoryId": "Category " + id + " does not exist"})
	}
	return nil
}
