package ledger

import (
	"fmt"

	"brokerbook/internal/model"
)

// OnFullyDelivered is the automatic transition taken when a deal's ordered
// quantity has been delivered. Only Pending moves (to Delivered); Paid is
// never downgraded and Delivered stays put.
func OnFullyDelivered(current model.DealStatus) (model.DealStatus, bool) {
	if current == model.DealPending {
		return model.DealDelivered, true
	}
	return current, false
}

// SetStatus is an explicit user transition. Any valid status may be set,
// including moving a deal back to Pending.
func SetStatus(current, next model.DealStatus) (model.DealStatus, error) {
	if !next.Valid() {
		return current, fmt.Errorf("invalid deal status %q", next)
	}
	return next, nil
}
