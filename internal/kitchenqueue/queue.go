// Package kitchenqueue derives the kitchen-facing ordering of active
// orders. It is a pure projection: inputs are never mutated and
// recomputing on every read is safe.
package kitchenqueue

import (
	"sort"

	"resto/internal/models"
)

// Queue returns the active orders (pending or processing) oldest first.
// Orders with identical timestamps keep their input relative order.
func Queue(orders []models.Order) []models.Order {
	active := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == models.StatusPending || o.Status == models.StatusProcessing {
			active = append(active, o)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	return active
}

// Position returns the 1-based place of an order in the queue, or 0 if
// the order is not queued. Used by tracking displays.
func Position(orders []models.Order, orderID string) int {
	for i, o := range Queue(orders) {
		if o.ID == orderID {
			return i + 1
		}
	}
	return 0
}
