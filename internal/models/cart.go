package models

import "time"

// MaxCartQuantity caps a single cart line, including merged adds.
const MaxCartQuantity = 999

// CartItem is one (customer, product) line of a shopping cart.
type CartItem struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID      string    `json:"customerId" gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_customer_product"`
	ProductID       string    `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_customer_product"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	SpecialRequests *string   `json:"specialRequests" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt"`
	Product         *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type AddToCartRequest struct {
	ProductID       string  `json:"productId" validate:"required"`
	Quantity        *int    `json:"quantity" validate:"omitempty,gte=1,lte=999"`
	SpecialRequests *string `json:"specialRequests" validate:"omitempty,max=1000"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=999"`
}

// Favorite marks a product a customer wants to find again.
type Favorite struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID string    `json:"customerId" gorm:"type:varchar(255);not null;uniqueIndex:idx_favorite_customer_product"`
	ProductID  string    `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_customer_product"`
	CreatedAt  time.Time `json:"createdAt"`
	Product    *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type FavoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
