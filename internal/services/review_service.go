package services

import (
	"context"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
)

type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
}

func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

func (s *ReviewService) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	if err := s.productExists(ctx, productID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.GetByProduct(ctx, productID)
	if err != nil {
		return nil, internalError("Failed to fetch reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, caller models.Caller, productID string, req models.CreateReviewRequest) (*models.Review, error) {
	if err := s.productExists(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID:  productID,
		CustomerID: caller.ID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, internalError("Failed to create review", err)
	}
	return review, nil
}

func (s *ReviewService) productExists(ctx context.Context, productID string) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return internalError("Failed to fetch product", err)
	}
	if product == nil {
		return apperrors.NotFound("Product not found")
	}
	return nil
}

// VendorService serves the vendor dashboard.
type VendorService struct {
	stats repositories.StatsRepository
}

func NewVendorService(stats repositories.StatsRepository) *VendorService {
	return &VendorService{stats: stats}
}

// Stats aggregates the calling vendor's sales, active products and rating.
func (s *VendorService) Stats(ctx context.Context, caller models.Caller) (*models.VendorStats, error) {
	if err := requireVendor(caller, "view vendor stats"); err != nil {
		return nil, err
	}
	stats, err := s.stats.VendorStats(ctx, caller.ID)
	if err != nil {
		return nil, internalError("Failed to fetch vendor stats", err)
	}
	return stats, nil
}
