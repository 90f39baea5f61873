package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shopkart/backend/pkg/apperr"
)

func TestNewOrderFromCartRejectsEmptyCart(t *testing.T) {
	cart := NewCart(bson.NewObjectID())

	order, err := NewOrderFromCart(cart, true)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestNewOrderFromCartSnapshot(t *testing.T) {
	userID := bson.NewObjectID()
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()

	cart := NewCart(userID)
	cart.AddUnit(p1, 100)
	cart.AddUnit(p1, 100)
	cart.AddUnit(p2, 50)

	require.Equal(t, 2, cart.TotalItems)
	require.InDelta(t, 250, cart.TotalPrice, 1e-9)

	order, err := NewOrderFromCart(cart, true)
	require.NoError(t, err)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, cart.Items, order.Items)
	assert.Equal(t, 2, order.TotalItems)
	assert.InDelta(t, 250, order.TotalPrice, 1e-9)
	assert.Equal(t, 3, order.TotalQuantity, "totalQuantity sums quantities at checkout")
	assert.True(t, order.Cancellable)
	assert.Equal(t, OrderPending, order.Status)
	assert.False(t, order.IsDeleted)

	// The snapshot must not alias the cart's item slice.
	cart.Items[0].Quantity = 99
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderTransitionsFromPending(t *testing.T) {
	order := &Order{Status: OrderPending, Cancellable: true}

	assert.NoError(t, order.CanTransition(OrderCompleted))
	assert.NoError(t, order.CanTransition(OrderCancelled))
}

func TestOrderCancellableGate(t *testing.T) {
	order := &Order{Status: OrderPending, Cancellable: false}

	assert.NoError(t, order.CanTransition(OrderCompleted))

	err := order.CanTransition(OrderCancelled)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
}

func TestOrderTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderCompleted, OrderCancelled} {
		order := &Order{Status: terminal, Cancellable: true}

		for _, target := range []OrderStatus{OrderCompleted, OrderCancelled} {
			err := order.CanTransition(target)
			require.Error(t, err, "transition %s -> %s must be rejected", terminal, target)
			assert.Equal(t, apperr.InvalidState, apperr.KindOf(err),
				"re-applying or leaving a terminal status is InvalidState")
		}
	}
}

func TestOrderTransitionTargetValidation(t *testing.T) {
	order := &Order{Status: OrderPending, Cancellable: true}

	err := order.CanTransition(OrderPending)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestParseTransitionTarget(t *testing.T) {
	tests := []struct {
		input string
		want  OrderStatus
		ok    bool
	}{
		{"completed", OrderCompleted, true},
		{"cancelled", OrderCancelled, true},
		{"pending", "", false},
		{"shipped", "", false},
		{"", "", false},
		{"Cancelled", "", false},
	}

	for _, tt := range tests {
		got, err := ParseTransitionTarget(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, got)
		} else {
			require.Error(t, err, "input %q", tt.input)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		}
	}
}

func TestCheckoutScenario(t *testing.T) {
	// Cart: [{P1, qty 2}, {P2, qty 1}], P1 price 100, P2 price 50.
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()

	cart := NewCart(bson.NewObjectID())
	cart.AddUnit(p1, 100)
	cart.AddUnit(p1, 100)
	cart.AddUnit(p2, 50)

	assert.InDelta(t, 250, cart.TotalPrice, 1e-9)
	assert.Equal(t, 2, cart.TotalItems)

	order, err := NewOrderFromCart(cart, true)
	require.NoError(t, err)
	assert.Equal(t, 3, order.TotalQuantity)
	assert.InDelta(t, 250, order.TotalPrice, 1e-9)

	cart.Clear()
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalPrice)
}
