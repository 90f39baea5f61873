package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkart/backend/pkg/global"
	"github.com/shopkart/backend/pkg/models"
	"github.com/shopkart/backend/pkg/mongo"
)

// CreateOrder checks out the user's cart: the cart is snapshotted into a
// pending order and cleared, atomically.
func CreateOrder(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}
	cancellable := true
	if req.Cancellable != nil {
		cancellable = *req.Cancellable
	}

	ctx := c.Request.Context()

	if _, err := mongo.GetUserByID(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	cart, err := mongo.GetCartByUserID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := models.NewOrderFromCart(cart, cancellable)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := mongo.CreateOrderFromCart(ctx, order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse("Order created successfully.", created))
}

// UpdateOrder finalizes a pending order as completed or cancelled.
func UpdateOrder(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}

	orderID, ok := parseObjectIDField(c, "orderId", req.OrderID)
	if !ok {
		return
	}

	target, err := models.ParseTransitionTarget(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	if _, err := mongo.GetUserByID(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	order, err := mongo.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Precise rejection messages come from the state machine; the
	// conditional update below remains the enforcement of record.
	if err := order.CanTransition(target); err != nil {
		respondError(c, err)
		return
	}

	updated, err := mongo.UpdateOrderStatus(ctx, orderID, userID, target)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("Order updated successfully.", updated))
}
