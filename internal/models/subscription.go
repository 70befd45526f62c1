package models

import "time"

// PlanType is the delivery cadence of a subscription.
type PlanType string

const (
	PlanWeekly   PlanType = "weekly"
	PlanBiweekly PlanType = "biweekly"
	PlanMonthly  PlanType = "monthly"
)

type Preferences struct {
	Categories      []string `json:"categories" validate:"omitempty,max=20,dive,max=100"`
	Allergies       []string `json:"allergies" validate:"omitempty,max=20,dive,max=100"`
	SpecialRequests string   `json:"specialRequests" validate:"max=1000"`
}

// Subscription is a recurring box agreement between a customer and a vendor.
// Cancelled subscriptions stay in the table with IsActive=false.
type Subscription struct {
	ID               string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID       string      `json:"customerId" gorm:"type:varchar(255);not null;index"`
	VendorID         string      `json:"vendorId" gorm:"type:varchar(255);not null;index"`
	PlanType         PlanType    `json:"planType" gorm:"type:varchar(20);not null"`
	Preferences      Preferences `json:"preferences" gorm:"type:text;serializer:json"`
	IsActive         bool        `json:"isActive" gorm:"not null"`
	NextDeliveryDate *time.Time  `json:"nextDeliveryDate"`
	CreatedAt        time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

type SubscriptionFilter struct {
	CustomerID string
	VendorID   string
	IsActive   *bool
}

type CreateSubscriptionRequest struct {
	VendorID         string       `json:"vendorId" validate:"required"`
	PlanType         PlanType     `json:"planType" validate:"required,oneof=weekly biweekly monthly"`
	Preferences      *Preferences `json:"preferences"`
	NextDeliveryDate *time.Time   `json:"nextDeliveryDate"`
}

type UpdateSubscriptionRequest struct {
	PlanType         *PlanType    `json:"planType" validate:"omitempty,oneof=weekly biweekly monthly"`
	Preferences      *Preferences `json:"preferences"`
	IsActive         *bool        `json:"isActive"`
	NextDeliveryDate *time.Time   `json:"nextDeliveryDate"`
}
