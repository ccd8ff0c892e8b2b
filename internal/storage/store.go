// Package storage persists orders. Implementations must serialize
// concurrent status transitions with a compare-and-swap on the current
// status; the lifecycle package decides legality, storage enforces
// that the decision was made against fresh state.
package storage

import (
	"context"
	"errors"

	"resto/internal/models"
)

// ErrOrderNotFound is returned when no order matches the given id.
var ErrOrderNotFound = errors.New("order not found")

// ErrStatusConflict is returned when a compare-and-swap update finds
// the order in a different status than the caller observed. The caller
// should re-read the order and re-run the lifecycle check.
var ErrStatusConflict = errors.New("order status changed concurrently")

// CreateOrder carries everything needed to persist a new order. The
// snapshot is immutable cart output; the store assigns id,
// daily order id, and creation time.
type CreateOrder struct {
	TableID      string
	CustomerName string
	Snapshot     models.OrderSnapshot
}

// Filter narrows List results. A nil Statuses slice matches all.
type Filter struct {
	Statuses []models.OrderStatus
}

// OrderStore is the persistence contract consumed by the services.
type OrderStore interface {
	// Create persists a new pending order and returns it with id,
	// daily order id, and created-at assigned.
	Create(ctx context.Context, req CreateOrder) (*models.Order, error)

	// Get returns one order with its items.
	Get(ctx context.Context, id string) (*models.Order, error)

	// List returns orders matching the filter, oldest first.
	List(ctx context.Context, filter Filter) ([]models.Order, error)

	// UpdateStatus writes a new status and processed flag if and only
	// if the order is still in the expected status. Returns
	// ErrStatusConflict otherwise.
	UpdateStatus(ctx context.Context, id string, expect, to models.OrderStatus, isProcessed bool) (*models.Order, error)
}
