package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll returns the products matching filter, newest first.
//
// Scalar filters run in SQL. Tags and dietary labels are stored as JSON
// text so the intersection test runs over the fetched rows.
func (r *GORMProductRepository) GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, translate(err, "list products")
	}

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if len(filter.Tags) > 0 && !intersects(p.Tags, filter.Tags) {
			continue
		}
		if len(filter.Dietary) > 0 && !intersects(p.Dietary, filter.Dietary) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translate(err, "get product")
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return translate(r.db.WithContext(ctx).Create(product).Error, "create product")
}

// Update writes the named columns of product and refreshes updated_at.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, fields ...string) error {
	product.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(product).Select(append(fields, "updated_at")).Updates(product)
	if res.Error != nil {
		return translate(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found", product.ID)
	}
	return nil
}

// Delete hard-deletes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found", id)
	}
	return nil
}

// intersects reports whether have and want share at least one value,
// ignoring case.
func intersects(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, v := range have {
		set[strings.ToLower(v)] = struct{}{}
	}
	for _, v := range want {
		if _, ok := set[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}
