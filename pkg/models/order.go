package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shopkart/backend/pkg/apperr"
)

// OrderStatus is the order state machine: pending is the initial state,
// completed and cancelled are terminal.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// ParseTransitionTarget validates a requested status transition target.
// Only the two terminal states are reachable by request.
func ParseTransitionTarget(value string) (OrderStatus, error) {
	switch OrderStatus(value) {
	case OrderCompleted, OrderCancelled:
		return OrderStatus(value), nil
	default:
		return "", apperr.Newf(apperr.Validation,
			"<status> must be either <%s> or <%s>.", OrderCompleted, OrderCancelled)
	}
}

// Order is the immutable snapshot of a cart taken at checkout, tracked
// through the status lifecycle.
type Order struct {
	ID            bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID        bson.ObjectID `json:"userId" bson:"userId"`
	Items         []CartItem    `json:"items" bson:"items"`
	TotalPrice    float64       `json:"totalPrice" bson:"totalPrice"`
	TotalItems    int           `json:"totalItems" bson:"totalItems"`
	TotalQuantity int           `json:"totalQuantity" bson:"totalQuantity"`
	Cancellable   bool          `json:"cancellable" bson:"cancellable"`
	Status        OrderStatus   `json:"status" bson:"status"`
	DeletedAt     *time.Time    `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	IsDeleted     bool          `json:"isDeleted" bson:"isDeleted"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewOrderFromCart snapshots a non-empty cart into a pending order.
// totalQuantity is computed at this instant; the cart is cleared by the
// caller only after the order is durably created.
func NewOrderFromCart(cart *Cart, cancellable bool) (*Order, error) {
	if cart.IsEmpty() {
		return nil, apperr.New(apperr.Validation,
			"Cart is empty: add product(s) to cart to create an order.")
	}
	now := time.Now()
	items := make([]CartItem, len(cart.Items))
	copy(items, cart.Items)
	return &Order{
		ID:            bson.NewObjectID(),
		UserID:        cart.UserID,
		Items:         items,
		TotalPrice:    cart.TotalPrice,
		TotalItems:    cart.TotalItems,
		TotalQuantity: cart.TotalQuantity(),
		Cancellable:   cancellable,
		Status:        OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsFinalized reports whether the order has left the pending state.
func (o *Order) IsFinalized() bool {
	return o.Status != OrderPending
}

// CanTransition checks the state machine rules for moving to target.
// Once finalized, no transition is permitted, including re-applying the
// current terminal status.
func (o *Order) CanTransition(target OrderStatus) error {
	if o.IsFinalized() {
		return apperr.Newf(apperr.InvalidState,
			"Order already finalized (status: <%s>).", o.Status)
	}
	if target == OrderCancelled && !o.Cancellable {
		return apperr.New(apperr.InvalidState,
			"Order cannot be cancelled (cancellable: <false>).")
	}
	switch target {
	case OrderCompleted, OrderCancelled:
		return nil
	default:
		return apperr.Newf(apperr.Validation,
			"<status> must be either <%s> or <%s>.", OrderCompleted, OrderCancelled)
	}
}

// CreateOrderRequest is the POST /users/:userId/orders payload.
// cancellable defaults to true when absent.
type CreateOrderRequest struct {
	Cancellable *bool `json:"cancellable"`
}

// UpdateOrderRequest is the PUT /users/:userId/orders payload.
type UpdateOrderRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
