// Package order turns a validated cart into a persisted order and
// announces it to the kitchen.
package order

import (
	"context"
	"fmt"

	"resto/internal/cart"
	"resto/internal/logger"
	"resto/internal/messaging"
	"resto/internal/models"
	"resto/internal/storage"
)

// Service provides order intake.
type Service struct {
	store     storage.OrderStore
	publisher messaging.EventPublisher
	logger    *logger.Logger
}

// NewService creates an order service. The publisher may be nil when
// no broker is configured; orders are then persisted without a kitchen
// announcement.
func NewService(store storage.OrderStore, publisher messaging.EventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// Submit validates and persists the cart as a new pending order. On
// success the cart is cleared; the returned order carries the assigned
// id, daily order id, and creation time.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, tableID, customerName string) (*models.Order, error) {
	requestID := logger.GenerateRequestID()

	if customerName == "" {
		return nil, &cart.ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if len(customerName) > 100 {
		return nil, &cart.ValidationError{Field: "customer_name", Message: "customer name must be less than 100 characters"}
	}
	if tableID == "" {
		return nil, &cart.ValidationError{Field: "table_id", Message: "table id is required"}
	}
	if c.Empty() {
		return nil, &cart.ValidationError{Field: "items", Message: "cart is empty"}
	}

	order, err := s.store.Create(ctx, storage.CreateOrder{
		TableID:      tableID,
		CustomerName: customerName,
		Snapshot:     c.Snapshot(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order_created", fmt.Sprintf("Created order %s", order.Number()), requestID, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.Number(),
		"table_id":     order.TableID,
		"total_price":  order.TotalPrice,
		"items":        len(order.Items),
	})

	// The order is persisted either way; a failed announcement only
	// delays the kitchen, it must not fail the submission.
	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, models.NewOrderMessage(order)); err != nil {
			s.logger.Error("order_publish_failed", "Failed to announce order to kitchen", requestID, err, map[string]interface{}{
				"order_id": order.ID,
			})
		}
	}

	c.Lines = nil
	return order, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.store.Get(ctx, id)
}
