package services

import (
	"context"
	"strings"
	"time"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
)

// CategoryService serves the category reference data.
type CategoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internalError("Failed to fetch categories", err)
	}
	return categories, nil
}

// CreateCategory lets a vendor add a category. Names are unique.
func (s *CategoryService) CreateCategory(ctx context.Context, caller models.Caller, req models.CreateCategoryRequest) (*models.Category, error) {
	if err := requireVendor(caller, "create categories"); err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict("Category %q already exists", category.Name)
		}
		return nil, internalError("Failed to create category", err)
	}
	return category, nil
}

// EnsureDefaults inserts defaults when no category exists yet.
func (s *CategoryService) EnsureDefaults(ctx context.Context, defaults []models.Category) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return internalError("Failed to count categories", err)
	}
	if n > 0 {
		return nil
	}
	for _, c := range defaults {
		category := c
		category.ID = ""
		if err := s.repo.Create(ctx, &category); err != nil {
			return internalError("Failed to seed categories", err)
		}
	}
	return nil
}
