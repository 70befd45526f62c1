package models

import "time"

// Review is a customer's 1 to 5 star rating of a product.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID  string    `json:"productId" gorm:"type:varchar(36);not null;index"`
	CustomerID string    `json:"customerId" gorm:"type:varchar(255);not null"`
	OrderID    *string   `json:"orderId" gorm:"type:varchar(36)"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    *string   `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	Customer   *User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
	OrderID *string `json:"orderId" validate:"omitempty,uuid"`
}

// VendorStats summarises a vendor's storefront.
type VendorStats struct {
	TotalSales     float64 `json:"totalSales"`
	TotalOrders    int64   `json:"totalOrders"`
	ActiveProducts int64   `json:"activeProducts"`
	AverageRating  float64 `json:"averageRating"`
}
