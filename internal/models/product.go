package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a listing owned by exactly one vendor.
type Product struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID        string          `json:"vendorId" gorm:"type:varchar(255);not null;index"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID      *string         `json:"categoryId" gorm:"type:varchar(36);index"`
	ImageURL        *string         `json:"imageUrl" gorm:"type:varchar(2048)"`
	Stock           int             `json:"stock" gorm:"not null"`
	IsActive        bool            `json:"isActive" gorm:"not null;index"`
	Tags            []string        `json:"tags" gorm:"type:text;serializer:json"`
	PrepTimeMinutes *int            `json:"prepTimeMinutes"`
	Dietary         []string        `json:"dietary" gorm:"type:text;serializer:json"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductInput carries the vendor-editable product fields. Nil fields are
// left untouched on update.
type ProductInput struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description" validate:"omitempty,max=5000"`
	Price           *decimal.Decimal `json:"price"`
	CategoryID      *string          `json:"categoryId" validate:"omitempty,uuid"`
	ImageURL        *string          `json:"imageUrl" validate:"omitempty,max=2048"`
	Stock           *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive        *bool            `json:"isActive"`
	Tags            []string         `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	PrepTimeMinutes *int             `json:"prepTimeMinutes" validate:"omitempty,gte=0,lte=10080"`
	Dietary         []string         `json:"dietary" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// ProductFilter narrows a product listing. Zero values impose no constraint.
type ProductFilter struct {
	CategoryID string
	VendorID   string
	Search     string
	Tags       []string
	Dietary    []string
	IsActive   *bool
}
