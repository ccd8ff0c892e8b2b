package kitchen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto/internal/lifecycle"
	"resto/internal/logger"
	"resto/internal/messaging"
	"resto/internal/models"
	"resto/internal/storage"
)

const (
	basePrepTime    = 5 * time.Second
	perItemPrepTime = 2 * time.Second
)

// Worker consumes newly created orders and runs them through the
// kitchen lifecycle: pick up (pending to processing), prepare,
// complete.
type Worker struct {
	name     string
	service  *Service
	consumer *messaging.Consumer
	logger   *logger.Logger

	// prepDelay is swapped out in tests.
	prepDelay func(itemCount int) time.Duration
}

// NewWorker creates a kitchen worker.
func NewWorker(name string, service *Service, consumer *messaging.Consumer, log *logger.Logger) *Worker {
	return &Worker{
		name:      name,
		service:   service,
		consumer:  consumer,
		logger:    log,
		prepDelay: prepTime,
	}
}

func prepTime(itemCount int) time.Duration {
	return basePrepTime + time.Duration(itemCount)*perItemPrepTime
}

// Start consumes order messages until the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker_started", fmt.Sprintf("Kitchen worker %s started", w.name), "", map[string]interface{}{
		"worker_name": w.name,
	})
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var orderMsg models.OrderMessage
	if err := messaging.ParseMessage(body, &orderMsg); err != nil {
		w.logger.Error("message_parsing_failed", "Failed to parse order message", requestID, err, nil)
		return fmt.Errorf("failed to parse message: %w", err)
	}

	w.logger.Debug("order_processing_started", fmt.Sprintf("Processing order %s", orderMsg.OrderNumber), requestID, map[string]interface{}{
		"order_id":      orderMsg.OrderID,
		"order_number":  orderMsg.OrderNumber,
		"customer_name": orderMsg.CustomerName,
		"total_price":   orderMsg.TotalPrice,
	})

	return w.processOrder(ctx, &orderMsg, requestID)
}

func (w *Worker) processOrder(ctx context.Context, orderMsg *models.OrderMessage, requestID string) error {
	_, err := w.service.MarkProcessed(ctx, orderMsg.OrderID, true)
	if err != nil {
		// Someone else already picked it up or resolved it; the
		// message is done either way.
		if errors.Is(err, storage.ErrStatusConflict) || errors.Is(err, storage.ErrOrderNotFound) || lifecycle.IsIllegalTransition(err) {
			w.logger.Debug("order_skipped", fmt.Sprintf("Order %s no longer pending", orderMsg.OrderNumber), requestID, map[string]interface{}{
				"order_id": orderMsg.OrderID,
			})
			return nil
		}
		return fmt.Errorf("failed to pick up order: %w", err)
	}

	delay := w.prepDelay(len(orderMsg.Items))
	w.logger.Debug("preparation_started", fmt.Sprintf("Preparing order %s for %v", orderMsg.OrderNumber, delay), requestID, map[string]interface{}{
		"order_id":     orderMsg.OrderID,
		"prep_seconds": delay.Seconds(),
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}

	if _, err := w.service.Complete(ctx, orderMsg.OrderID); err != nil {
		// Cancelled or completed by staff while preparing.
		if errors.Is(err, storage.ErrStatusConflict) || lifecycle.IsIllegalTransition(err) {
			return nil
		}
		return fmt.Errorf("failed to complete order: %w", err)
	}

	w.logger.Debug("order_completed", fmt.Sprintf("Finished order %s", orderMsg.OrderNumber), requestID, map[string]interface{}{
		"order_id":     orderMsg.OrderID,
		"processed_by": w.name,
	})
	return nil
}
