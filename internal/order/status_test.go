package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"queueless/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.OrderStatus
		allowed  bool
	}{
		{model.OrderPending, model.OrderPreparing, true},
		{model.OrderPending, model.OrderCancelled, true},
		{model.OrderPreparing, model.OrderCompleted, true},
		{model.OrderPreparing, model.OrderCancelled, true},

		{model.OrderPending, model.OrderCompleted, false},
		{model.OrderPreparing, model.OrderPending, false},
		{model.OrderCompleted, model.OrderPreparing, false},
		{model.OrderCompleted, model.OrderCancelled, false},
		{model.OrderCancelled, model.OrderPending, false},
		{model.OrderCancelled, model.OrderCompleted, false},
		{model.OrderPending, model.OrderPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(model.OrderPending))
	assert.False(t, IsTerminal(model.OrderPreparing))
	assert.True(t, IsTerminal(model.OrderCompleted))
	assert.True(t, IsTerminal(model.OrderCancelled))
	assert.False(t, IsTerminal(model.OrderStatus("bogus")))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []model.OrderStatus{
		model.OrderPending, model.OrderPreparing, model.OrderCompleted, model.OrderCancelled,
	} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus(model.OrderStatus("shipped")))
	assert.False(t, ValidStatus(model.OrderStatus("")))
}

func TestNextActionsTerminalStatesOfferNothing(t *testing.T) {
	assert.Equal(t, []model.OrderStatus{model.OrderPreparing, model.OrderCancelled}, NextActions(model.OrderPending))
	assert.Equal(t, []model.OrderStatus{model.OrderCompleted, model.OrderCancelled}, NextActions(model.OrderPreparing))
	assert.Empty(t, NextActions(model.OrderCompleted))
	assert.Empty(t, NextActions(model.OrderCancelled))
}
