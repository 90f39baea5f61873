package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shopkart/backend/pkg/apperr"
)

// checkTotals recomputes both derived values from the item array and the
// price table, independently of the incremental bookkeeping.
func checkTotals(t *testing.T, cart *Cart, prices map[bson.ObjectID]float64) {
	t.Helper()

	assert.Equal(t, len(cart.Items), cart.TotalItems, "totalItems must equal len(items)")

	var want float64
	for _, item := range cart.Items {
		require.GreaterOrEqual(t, item.Quantity, 1, "line item quantity must be >= 1")
		want += float64(item.Quantity) * prices[item.ProductID]
	}
	assert.InDelta(t, want, cart.TotalPrice, 1e-9, "totalPrice must equal sum of quantity*price")
}

func TestCartAddUnitMergesDuplicates(t *testing.T) {
	p1 := bson.NewObjectID()
	prices := map[bson.ObjectID]float64{p1: 100}

	cart := NewCart(bson.NewObjectID())
	cart.AddUnit(p1, prices[p1])
	cart.AddUnit(p1, prices[p1])

	require.Len(t, cart.Items, 1, "same product twice must stay one line item")
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.TotalItems)
	assert.InDelta(t, 200, cart.TotalPrice, 1e-9)
	checkTotals(t, cart, prices)
}

func TestCartDecrementItem(t *testing.T) {
	p1 := bson.NewObjectID()
	prices := map[bson.ObjectID]float64{p1: 40}

	cart := NewCart(bson.NewObjectID())
	cart.AddUnit(p1, prices[p1])
	cart.AddUnit(p1, prices[p1])
	cart.AddUnit(p1, prices[p1])

	require.NoError(t, cart.DecrementItem(p1, prices[p1]))
	assert.Equal(t, 2, cart.Quantity(p1), "decrement reduces quantity by exactly 1")
	checkTotals(t, cart, prices)

	require.NoError(t, cart.DecrementItem(p1, prices[p1]))
	require.NoError(t, cart.DecrementItem(p1, prices[p1]))
	assert.Equal(t, -1, cart.ItemIndex(p1), "decrementing a quantity-1 item removes the line")
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartRemoveItemDropsWholeLine(t *testing.T) {
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()
	prices := map[bson.ObjectID]float64{p1: 100, p2: 50}

	cart := NewCart(bson.NewObjectID())
	cart.AddUnit(p1, prices[p1])
	cart.AddUnit(p1, prices[p1])
	cart.AddUnit(p2, prices[p2])

	require.NoError(t, cart.RemoveItem(p1, prices[p1]))
	assert.Equal(t, -1, cart.ItemIndex(p1))
	assert.Equal(t, 1, cart.TotalItems)
	checkTotals(t, cart, prices)
}

func TestCartRemoveMissingProduct(t *testing.T) {
	cart := NewCart(bson.NewObjectID())

	err := cart.RemoveItem(bson.NewObjectID(), 10)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	err = cart.DecrementItem(bson.NewObjectID(), 10)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCartTotalsAfterMixedSequence(t *testing.T) {
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()
	p3 := bson.NewObjectID()
	prices := map[bson.ObjectID]float64{p1: 19.99, p2: 5, p3: 120.5}

	cart := NewCart(bson.NewObjectID())
	ops := []func(){
		func() { cart.AddUnit(p1, prices[p1]) },
		func() { cart.AddUnit(p2, prices[p2]) },
		func() { cart.AddUnit(p1, prices[p1]) },
		func() { cart.AddUnit(p3, prices[p3]) },
		func() { _ = cart.DecrementItem(p1, prices[p1]) },
		func() { cart.AddUnit(p2, prices[p2]) },
		func() { _ = cart.RemoveItem(p3, prices[p3]) },
		func() { cart.AddUnit(p1, prices[p1]) },
	}
	for _, op := range ops {
		op()
		checkTotals(t, cart, prices)
	}

	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 2, cart.Quantity(p1))
	assert.Equal(t, 2, cart.Quantity(p2))
}

func TestCartClear(t *testing.T) {
	p1 := bson.NewObjectID()

	cart := NewCart(bson.NewObjectID())
	cart.AddUnit(p1, 75)
	cart.AddUnit(p1, 75)

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalPrice)
	assert.NotNil(t, cart.Items, "cleared cart keeps an empty array, not null")
}

func TestCartTotalQuantity(t *testing.T) {
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()

	cart := NewCart(bson.NewObjectID())
	assert.Zero(t, cart.TotalQuantity())

	cart.AddUnit(p1, 100)
	cart.AddUnit(p1, 100)
	cart.AddUnit(p2, 50)

	assert.Equal(t, 3, cart.TotalQuantity())
}
