package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkart/backend/pkg/apperr"
	"github.com/shopkart/backend/pkg/global"
	"github.com/shopkart/backend/pkg/models"
	"github.com/shopkart/backend/pkg/mongo"
)

// AddToCart puts one unit of a product into the user's cart, creating the
// cart on first use.
func AddToCart(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}

	ctx := c.Request.Context()

	if _, err := mongo.GetUserByID(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	// cartId is optional; when present it must resolve to this user's cart.
	if req.CartID != "" {
		cartID, ok := parseObjectIDField(c, "cartId", req.CartID)
		if !ok {
			return
		}
		if _, err := mongo.GetCartForUser(ctx, cartID, userID); err != nil {
			respondError(c, err)
			return
		}
	}

	productID, ok := parseObjectIDField(c, "productId", req.ProductID)
	if !ok {
		return
	}

	product, err := mongo.GetActiveProduct(ctx, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	cart, err := mongo.AddProductToCart(ctx, userID, product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse("Product added to cart successfully.", cart))
}

// UpdateCart removes a product line from the cart (removeProduct=0) or
// decrements its quantity by one (removeProduct=1).
func UpdateCart(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}

	cartID, ok := parseObjectIDField(c, "cartId", req.CartID)
	if !ok {
		return
	}
	productID, ok := parseObjectIDField(c, "productId", req.ProductID)
	if !ok {
		return
	}
	if req.RemoveProduct == nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<removeProduct> is required."))
		return
	}
	if *req.RemoveProduct != 0 && *req.RemoveProduct != 1 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<removeProduct> can only be <0> or <1>."))
		return
	}
	mode := models.RemoveMode(*req.RemoveProduct)

	ctx := c.Request.Context()

	if _, err := mongo.GetUserByID(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	cart, err := mongo.GetCartForUser(ctx, cartID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if cart.IsEmpty() {
		respondError(c, apperr.Newf(apperr.InvalidState,
			"No products in cart with ID <%s>.", cartID.Hex()))
		return
	}

	product, err := mongo.GetActiveProduct(ctx, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := mongo.RemoveProductFromCart(ctx, cart, product, mode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("Cart updated successfully.", updated))
}

// GetCart returns the user's cart with product details resolved.
func GetCart(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := mongo.GetUserByID(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	details, err := mongo.GetCartDetails(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("User's cart details.", details))
}

// DeleteCart empties the cart: items reset, totals zeroed. The cart
// document itself is never removed.
func DeleteCart(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := mongo.GetUserByID(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	if _, err := mongo.ClearCart(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
