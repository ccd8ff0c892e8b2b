package lifecycle

import (
	"errors"
	"fmt"

	"resto/internal/models"
)

// ErrAlreadyInPreparation is returned by Cancel once kitchen work has
// started. The message is intended for direct display to staff.
var ErrAlreadyInPreparation = errors.New("order is already being prepared and can no longer be cancelled")

// IllegalTransitionError reports a status change forbidden by the
// transition table. It is never coerced to a different legal status.
type IllegalTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("order is %s and can no longer change", e.From)
	}
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

// IsIllegalTransition reports whether err is an IllegalTransitionError,
// unwrapping as needed.
func IsIllegalTransition(err error) bool {
	var te *IllegalTransitionError
	return errors.As(err, &te)
}
