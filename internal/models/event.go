package models

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)

// OrderEvent is published to the message broker after order changes commit.
type OrderEvent struct {
	Type       string      `json:"type"`
	OrderID    string      `json:"orderId"`
	CustomerID string      `json:"customerId"`
	VendorID   string      `json:"vendorId"`
	Status     OrderStatus `json:"status"`
	Total      string      `json:"total"`
	OccurredAt time.Time   `json:"occurredAt"`
}
