package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/pkg/rabbitmq"
)

// EventPublisher delivers a message body to a queue. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	txManager   repositories.TransactionManager
	publisher   EventPublisher
	log         *logrus.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are sent.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	txManager repositories.TransactionManager,
	publisher EventPublisher,
	logger *logrus.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
		publisher:   publisher,
		log:         logger,
	}
}

// ListOrders returns the orders the caller placed, or for vendors the orders
// placed with them.
func (s *OrderService) ListOrders(ctx context.Context, caller models.Caller, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.Validation("Invalid order status", map[string]string{"status": fmt.Sprintf("unknown status %q", status)})
	}

	filter := models.OrderFilter{Status: status}
	if caller.IsVendor() {
		filter.VendorID = caller.ID
	} else {
		filter.CustomerID = caller.ID
	}

	orders, err := s.orderRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, internalError("Failed to fetch orders", err)
	}
	return orders, nil
}

// GetOrder returns an order with its items to its customer or vendor.
func (s *OrderService) GetOrder(ctx context.Context, caller models.Caller, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch order", err)
	}
	if order == nil {
		return nil, apperrors.NotFound("Order not found")
	}
	if order.CustomerID != caller.ID && order.VendorID != caller.ID {
		return nil, apperrors.Forbidden("You can only view your own orders")
	}
	return order, nil
}

// CreateOrder places an order for the caller. Unit prices are taken from the
// products at this moment. The order, its items and the clearing of the
// caller's cart commit together.
func (s *OrderService) CreateOrder(ctx context.Context, caller models.Caller, req models.CreateOrderRequest) (*models.Order, error) {
	data := req.OrderData
	if len(req.OrderItems) == 0 {
		return nil, apperrors.Validation("Validation failed", map[string]string{"orderItems": "An order needs at least one item"})
	}
	if data.Tax.IsNegative() || data.DeliveryFee.IsNegative() {
		return nil, apperrors.Validation("Validation failed", map[string]string{"tax": "Tax and delivery fee must not be negative"})
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	subtotal := decimal.Zero
	for i, in := range req.OrderItems {
		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, internalError("Failed to fetch product", err)
		}
		key := fmt.Sprintf("orderItems[%d].productId", i)
		switch {
		case product == nil:
			return nil, apperrors.Validation("Validation failed", map[string]string{key: "Product " + in.ProductID + " does not exist"})
		case product.VendorID != data.VendorID:
			return nil, apperrors.Validation("Validation failed", map[string]string{key: "Product " + in.ProductID + " is not sold by this vendor"})
		case !product.IsActive:
			return nil, apperrors.Validation("Validation failed", map[string]string{key: "Product " + in.ProductID + " is not available"})
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:       product.ID,
			Quantity:        in.Quantity,
			UnitPrice:       product.Price,
			TotalPrice:      lineTotal,
			SpecialRequests: in.SpecialRequests,
		})
	}

	if data.Subtotal != nil && !data.Subtotal.Equal(subtotal) {
		return nil, apperrors.Validation("Validation failed", map[string]string{
			"subtotal": fmt.Sprintf("Subtotal %s does not match the items (%s)", data.Subtotal.StringFixed(2), subtotal.StringFixed(2)),
		})
	}
	tax := data.Tax.Round(2)
	fee := data.DeliveryFee.Round(2)
	total := subtotal.Add(tax).Add(fee)
	if data.Total != nil && !data.Total.Equal(total) {
		return nil, apperrors.Validation("Validation failed", map[string]string{
			"total": fmt.Sprintf("Total %s must equal subtotal + tax + deliveryFee (%s)", data.Total.StringFixed(2), total.StringFixed(2)),
		})
	}

	order := &models.Order{
		CustomerID:            caller.ID,
		VendorID:              data.VendorID,
		Status:                models.OrderStatusPending,
		Subtotal:              subtotal,
		Tax:                   tax,
		DeliveryFee:           fee,
		Total:                 total,
		DeliveryAddress:       data.DeliveryAddress,
		SpecialInstructions:   data.SpecialInstructions,
		EstimatedDeliveryTime: data.EstimatedDeliveryTime,
	}

	err := s.txManager.Execute(ctx, func(repos repositories.RepositoryFactory) error {
		if err := repos.Orders().Create(ctx, order, items); err != nil {
			return err
		}
		return repos.Cart().Clear(ctx, caller.ID)
	})
	if err != nil {
		return nil, internalError("Failed to create order", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"vendor_id": order.VendorID,
		"items":     len(items),
	}).Info("Order created")
	s.publish(models.EventOrderCreated, order)
	return order, nil
}

// UpdateOrderStatus changes the status of an order. Only the order's vendor
// may do so.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, caller models.Caller, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("Invalid order status", map[string]string{"status": fmt.Sprintf("unknown status %q", status)})
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch order", err)
	}
	if order == nil {
		return nil, apperrors.NotFound("Order not found")
	}
	if order.VendorID != caller.ID {
		return nil, apperrors.Forbidden("Only the order's vendor can change its status")
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, internalError("Failed to update order status", err)
	}
	s.publish(models.EventOrderStatusUpdated, updated)
	return updated, nil
}

// publish sends an order event. Failures are logged and never reach the
// caller; the order has already been committed.
func (s *OrderService) publish(eventType string, order *models.Order) {
	entry := s.log.WithFields(logrus.Fields{"order_id": order.ID, "event": eventType})
	if s.publisher == nil {
		entry.Debug("Event publisher not configured, skipping")
		return
	}

	body, err := json.Marshal(models.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		VendorID:   order.VendorID,
		Status:     order.Status,
		Total:      order.Total.StringFixed(2),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		entry.WithError(err).Error("Failed to marshal order event")
		return
	}
	if err := s.publisher.Publish(rabbitmq.OrderQueue, body); err != nil {
		entry.WithError(err).Warn("Failed to publish order event")
		return
	}
	entry.Debug("Published order event")
}
