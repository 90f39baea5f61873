package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shopkart/backend/pkg/apperr"
)

// CartItem is one line in a cart or order: a product reference and how many
// units of it.
type CartItem struct {
	ProductID bson.ObjectID `json:"productId" bson:"productId"`
	Quantity  int           `json:"quantity" bson:"quantity"`
}

// Cart is the per-user aggregate of pending purchases. totalItems and
// totalPrice are derived values kept in sync with the item array on every
// mutation; they are never recomputed lazily.
type Cart struct {
	ID         bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID     bson.ObjectID `json:"userId" bson:"userId"`
	Items      []CartItem    `json:"items" bson:"items"`
	TotalPrice float64       `json:"totalPrice" bson:"totalPrice"`
	TotalItems int           `json:"totalItems" bson:"totalItems"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewCart creates an empty cart for a user.
func NewCart(userID bson.ObjectID) *Cart {
	now := time.Now()
	return &Cart{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ItemIndex returns the position of productID in the item array, or -1.
func (c *Cart) ItemIndex(productID bson.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the quantity of productID in the cart, 0 when absent.
func (c *Cart) Quantity(productID bson.ObjectID) int {
	if i := c.ItemIndex(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity sums the quantities over all line items.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// AddUnit adds one unit of a product. An existing line item gets its
// quantity incremented; otherwise a new line item with quantity 1 is
// appended and totalItems grows by one. totalPrice grows by the unit price
// either way.
func (c *Cart) AddUnit(productID bson.ObjectID, unitPrice float64) {
	if i := c.ItemIndex(productID); i >= 0 {
		c.Items[i].Quantity++
	} else {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: 1})
		c.TotalItems++
	}
	c.TotalPrice += unitPrice
	c.UpdatedAt = time.Now()
}

// RemoveItem drops the whole line item for a product.
func (c *Cart) RemoveItem(productID bson.ObjectID, unitPrice float64) error {
	i := c.ItemIndex(productID)
	if i < 0 {
		return apperr.New(apperr.NotFound, "Product not found in cart.")
	}
	c.TotalPrice -= unitPrice * float64(c.Items[i].Quantity)
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.TotalItems--
	c.UpdatedAt = time.Now()
	return nil
}

// DecrementItem removes one unit of a product. A quantity-1 line item is
// removed entirely.
func (c *Cart) DecrementItem(productID bson.ObjectID, unitPrice float64) error {
	i := c.ItemIndex(productID)
	if i < 0 {
		return apperr.New(apperr.NotFound, "Product not found in cart.")
	}
	if c.Items[i].Quantity == 1 {
		return c.RemoveItem(productID, unitPrice)
	}
	c.Items[i].Quantity--
	c.TotalPrice -= unitPrice
	c.UpdatedAt = time.Now()
	return nil
}

// Clear empties the item array and zeroes both totals. The cart document
// itself survives.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalItems = 0
	c.TotalPrice = 0
	c.UpdatedAt = time.Now()
}

// AddToCartRequest is the POST /users/:userId/cart payload. cartId is
// optional; when absent the user's cart is looked up (or lazily created).
type AddToCartRequest struct {
	CartID    string `json:"cartId"`
	ProductID string `json:"productId"`
}

// RemoveMode selects between dropping a line item and decrementing one unit.
type RemoveMode int

const (
	RemoveFull   RemoveMode = 0
	DecrementOne RemoveMode = 1
)

// UpdateCartRequest is the PUT /users/:userId/cart payload. removeProduct
// is 0 to remove the line item or 1 to decrement its quantity by one.
type UpdateCartRequest struct {
	CartID        string `json:"cartId"`
	ProductID     string `json:"productId"`
	RemoveProduct *int   `json:"removeProduct"`
}
