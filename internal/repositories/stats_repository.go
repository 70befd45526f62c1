package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// StatsRepository defines the interface for vendor analytics.
type StatsRepository interface {
	VendorStats(ctx context.Context, vendorID string) (*models.VendorStats, error)
}

type vendorSales struct {
	TotalSales  decimal.Decimal
	TotalOrders int64
}

type vendorRating struct {
	AverageRating float64
}

// GORMStatsRepository is a GORM implementation of StatsRepository.
type GORMStatsRepository struct {
	db *gorm.DB
}

func NewGORMStatsRepository(db *gorm.DB) *GORMStatsRepository {
	return &GORMStatsRepository{db: db}
}

// VendorStats aggregates the vendor's orders, active products and the
// average rating over reviews of all the vendor's products. Every aggregate
// falls back to zero so vendors without data never hit a division by zero.
func (r *GORMStatsRepository) VendorStats(ctx context.Context, vendorID string) (*models.VendorStats, error) {
	db := r.db.WithContext(ctx)

	var sales vendorSales
	err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS total_orders").
		Where("vendor_id = ?", vendorID).
		Scan(&sales).Error
	if err != nil {
		return nil, translate(err, "aggregate vendor sales")
	}

	var activeProducts int64
	err = db.Model(&models.Product{}).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Count(&activeProducts).Error
	if err != nil {
		return nil, translate(err, "count active products")
	}

	var rating vendorRating
	err = db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating").
		Where("product_id IN (?)", db.Model(&models.Product{}).Select("id").Where("vendor_id = ?", vendorID)).
		Scan(&rating).Error
	if err != nil {
		return nil, translate(err, "average vendor rating")
	}

	return &models.VendorStats{
		TotalSales:     sales.TotalSales.Round(2).InexactFloat64(),
		TotalOrders:    sales.TotalOrders,
		ActiveProducts: activeProducts,
		AverageRating:  rating.AverageRating,
	}, nil
}
