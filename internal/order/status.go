// Package order holds the order lifecycle rules: which statuses exist and
// which transitions between them the kitchen is allowed to make.
package order

import (
	"errors"

	"queueless/internal/model"
)

// ErrInvalidTransition is returned when a status change is not permitted by
// the lifecycle: pending → preparing → completed, with cancellation allowed
// from pending or preparing. Completed and cancelled are terminal.
var ErrInvalidTransition = errors.New("invalid order status transition")

var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderPending:   {model.OrderPreparing, model.OrderCancelled},
	model.OrderPreparing: {model.OrderCompleted, model.OrderCancelled},
	model.OrderCompleted: {},
	model.OrderCancelled: {},
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s model.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted from s.
func IsTerminal(s model.OrderStatus) bool {
	return len(transitions[s]) == 0 && ValidStatus(s)
}

// NextActions returns the statuses the dashboard may offer from s, in a fixed
// display order. Terminal statuses get none.
func NextActions(s model.OrderStatus) []model.OrderStatus {
	next := transitions[s]
	out := make([]model.OrderStatus, len(next))
	copy(out, next)
	return out
}
