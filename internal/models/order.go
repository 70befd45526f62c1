package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Address struct {
	Street  string `json:"street" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	ZipCode string `json:"zipCode" validate:"required,max=20"`
	Country string `json:"country" validate:"required,max=100"`
}

// Order is a customer's purchase from a single vendor.
type Order struct {
	ID                    string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID            string          `json:"customerId" gorm:"type:varchar(255);not null;index"`
	VendorID              string          `json:"vendorId" gorm:"type:varchar(255);not null;index"`
	Status                OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
	Subtotal              decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Tax                   decimal.Decimal `json:"tax" gorm:"type:decimal(10,2);not null"`
	DeliveryFee           decimal.Decimal `json:"deliveryFee" gorm:"type:decimal(10,2);not null"`
	Total                 decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	DeliveryAddress       Address         `json:"deliveryAddress" gorm:"type:text;serializer:json;not null"`
	SpecialInstructions   *string         `json:"specialInstructions" gorm:"type:text"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime"`
	CreatedAt             time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt             time.Time       `json:"updatedAt"`
	Items                 []OrderItem     `json:"orderItems,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is an immutable price snapshot of one ordered product.
type OrderItem struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID         string          `json:"orderId" gorm:"type:varchar(36);not null;index"`
	ProductID       string          `json:"productId" gorm:"type:varchar(36);not null"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	UnitPrice       decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	TotalPrice      decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	SpecialRequests *string         `json:"specialRequests" gorm:"type:text"`
	Product         *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// OrderFilter narrows an order listing. Empty fields impose no constraint.
type OrderFilter struct {
	CustomerID string
	VendorID   string
	Status     OrderStatus
}

type CreateOrderRequest struct {
	OrderData  OrderData        `json:"orderData"`
	OrderItems []OrderItemInput `json:"orderItems" validate:"required,min=1,max=100,dive"`
}

type OrderData struct {
	VendorID              string           `json:"vendorId" validate:"required"`
	Subtotal              *decimal.Decimal `json:"subtotal"`
	Tax                   decimal.Decimal  `json:"tax"`
	DeliveryFee           decimal.Decimal  `json:"deliveryFee"`
	Total                 *decimal.Decimal `json:"total"`
	DeliveryAddress       Address          `json:"deliveryAddress"`
	SpecialInstructions   *string          `json:"specialInstructions" validate:"omitempty,max=2000"`
	EstimatedDeliveryTime *time.Time       `json:"estimatedDeliveryTime"`
}

type OrderItemInput struct {
	ProductID       string  `json:"productId" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,gte=1,lte=999"`
	SpecialRequests *string `json:"specialRequests" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed preparing ready delivered cancelled"`
}
