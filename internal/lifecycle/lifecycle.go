// Package lifecycle is the only sanctioned mutation path for an
// order's status and processed flag. It decides legality of status
// transitions; persisting the result, and serializing concurrent
// transition attempts, is the storage layer's job.
package lifecycle

import (
	"fmt"

	"resto/internal/models"
)

// transitions is the full table of legal status changes. Absence means
// the transition is forbidden; no status may transition to itself.
var transitions = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.StatusPending: {
		models.StatusProcessing: true,
		// Direct completion skips the kitchen, e.g. counter sales.
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	},
	models.StatusProcessing: {
		// Back to pending is the staff correction case.
		models.StatusPending:   true,
		models.StatusCompleted: true,
	},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// Allowed reports whether an order may move from one status to another.
// Callers that persist status externally should compare-and-swap on the
// current status before acting on the answer.
func Allowed(from, to models.OrderStatus) bool {
	return transitions[from][to]
}

// SetStatus applies a status change after checking the transition
// table. The order is mutated only on success.
func SetStatus(o *models.Order, target models.OrderStatus) error {
	if !Allowed(o.Status, target) {
		return &IllegalTransitionError{From: o.Status, To: target}
	}
	o.Status = target
	return nil
}

// MarkProcessed sets the kitchen-processed flag. Marking a pending
// order as processed also moves it to processing; this is the single
// point where the flag and the status are coupled. Orders in a terminal
// status are immutable.
func MarkProcessed(o *models.Order, processed bool) error {
	if o.Status.IsTerminal() {
		return &IllegalTransitionError{From: o.Status, To: o.Status}
	}
	if processed && o.Status == models.StatusPending {
		if err := SetStatus(o, models.StatusProcessing); err != nil {
			return err
		}
	}
	o.IsProcessed = processed
	return nil
}

// Cancel moves an order to cancelled. Once the kitchen has started on
// the order the request is rejected with ErrAlreadyInPreparation so the
// caller can surface it to the user; it is never a silent no-op.
func Cancel(o *models.Order) error {
	if o.Status == models.StatusProcessing {
		return fmt.Errorf("%w: %w", ErrAlreadyInPreparation,
			&IllegalTransitionError{From: o.Status, To: models.StatusCancelled})
	}
	return SetStatus(o, models.StatusCancelled)
}

// Complete moves an order to completed.
func Complete(o *models.Order) error {
	return SetStatus(o, models.StatusCompleted)
}
