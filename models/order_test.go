package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("teleported")
	assert.Error(t, err)
}

func TestOrderStatusForwardTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusConfirmed))
	assert.True(t, OrderStatusConfirmed.CanTransition(OrderStatusPreparing))
	assert.True(t, OrderStatusPreparing.CanTransition(OrderStatusShipped))
	assert.True(t, OrderStatusShipped.CanTransition(OrderStatusDelivered))

	// Warehouses skip stages; any later stage is reachable directly.
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusShipped))
	assert.True(t, OrderStatusConfirmed.CanTransition(OrderStatusDelivered))
}

func TestOrderStatusBackwardTransitionsRejected(t *testing.T) {
	assert.False(t, OrderStatusConfirmed.CanTransition(OrderStatusPending))
	assert.False(t, OrderStatusShipped.CanTransition(OrderStatusPreparing))
	assert.False(t, OrderStatusPending.CanTransition(OrderStatusPending))
}

func TestOrderStatusSideBranches(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusShipped} {
		assert.True(t, from.CanTransition(OrderStatusCancelled), "cancel from %s", from)
		assert.True(t, from.CanTransition(OrderStatusRefunded), "refund from %s", from)
	}
}

func TestOrderStatusTerminalEnforcement(t *testing.T) {
	terminals := []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded}
	targets := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded,
	}
	for _, from := range terminals {
		assert.True(t, from.Terminal())
		for _, to := range targets {
			assert.False(t, from.CanTransition(to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: 249, Quantity: 2}
	assert.Equal(t, 498.0, item.LineTotal())
}
