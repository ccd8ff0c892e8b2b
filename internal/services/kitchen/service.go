// Package kitchen drives order status transitions on behalf of kitchen
// staff. Every transition is decided by the lifecycle package against a
// freshly read order and persisted with a compare-and-swap, so two
// staff members acting on the same order cannot both win.
package kitchen

import (
	"context"
	"fmt"

	"resto/internal/kitchenqueue"
	"resto/internal/lifecycle"
	"resto/internal/logger"
	"resto/internal/messaging"
	"resto/internal/models"
	"resto/internal/storage"
)

// Service exposes the kitchen-side order operations.
type Service struct {
	store     storage.OrderStore
	publisher messaging.EventPublisher
	logger    *logger.Logger
	staffName string
}

// NewService creates a kitchen service. staffName identifies who the
// status changes are attributed to in notifications.
func NewService(store storage.OrderStore, publisher messaging.EventPublisher, log *logger.Logger, staffName string) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
		staffName: staffName,
	}
}

// Queue returns the active orders oldest first.
func (s *Service) Queue(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.List(ctx, storage.Filter{
		Statuses: []models.OrderStatus{models.StatusPending, models.StatusProcessing},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders: %w", err)
	}
	return kitchenqueue.Queue(orders), nil
}

// MarkProcessed flags an order as picked up by the kitchen. A pending
// order moves to processing as part of the same write.
func (s *Service) MarkProcessed(ctx context.Context, orderID string, processed bool) (*models.Order, error) {
	return s.transition(ctx, orderID, func(o *models.Order) error {
		return lifecycle.MarkProcessed(o, processed)
	})
}

// Complete moves an order to completed.
func (s *Service) Complete(ctx context.Context, orderID string) (*models.Order, error) {
	return s.transition(ctx, orderID, lifecycle.Complete)
}

// Cancel moves an order to cancelled. Once preparation has started the
// lifecycle rejects it with a user-facing error.
func (s *Service) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	return s.transition(ctx, orderID, lifecycle.Cancel)
}

// transition reads the order, applies the lifecycle mutation to the
// copy, and persists the result with a compare-and-swap on the status
// the copy was read at.
func (s *Service) transition(ctx context.Context, orderID string, mutate func(*models.Order) error) (*models.Order, error) {
	requestID := logger.GenerateRequestID()

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	observed := order.Status
	observedProcessed := order.IsProcessed
	if err := mutate(order); err != nil {
		return nil, err
	}

	if order.Status == observed && order.IsProcessed == observedProcessed {
		// Nothing changed; skip the write.
		return order, nil
	}

	updated, err := s.store.UpdateStatus(ctx, orderID, observed, order.Status, order.IsProcessed)
	if err != nil {
		return nil, err
	}

	if order.Status != observed {
		s.logger.Info("order_status_changed",
			fmt.Sprintf("Order %s moved from %s to %s", updated.Number(), observed, updated.Status),
			requestID, map[string]interface{}{
				"order_id":   updated.ID,
				"old_status": string(observed),
				"new_status": string(updated.Status),
			})

		if s.publisher != nil {
			msg := models.NewStatusUpdateMessage(updated, observed, s.staffName)
			if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
				s.logger.Error("notification_publish_failed", "Failed to publish status notification", requestID, err, map[string]interface{}{
					"order_id": updated.ID,
				})
			}
		}
	}

	return updated, nil
}
