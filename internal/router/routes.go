package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkart/backend/pkg/global"
)

func InitializeRoutes() {
	Router.GET("/health", HealthCheck)

	// User APIs
	Router.POST("/register", CreateUser)
	Router.POST("/login", Login)
	Router.GET("/user/:userId/profile", Authentication(), Authorization(), GetUserProfile)
	Router.PUT("/user/:userId/profile", Authentication(), Authorization(), UpdateUserProfile)

	// Product APIs
	products := Router.Group("/products")
	{
		products.POST("", CreateProduct)
		products.GET("", GetProducts)
		products.GET("/:productId", GetProductByID)
		products.PUT("/:productId", UpdateProductByID)
		products.DELETE("/:productId", DeleteProductByID)
	}

	// Cart and Order APIs
	users := Router.Group("/users/:userId")
	users.Use(Authentication(), Authorization())
	{
		users.POST("/cart", AddToCart)
		users.PUT("/cart", UpdateCart)
		users.GET("/cart", GetCart)
		users.DELETE("/cart", DeleteCart)

		users.POST("/orders", CreateOrder)
		users.PUT("/orders", UpdateOrder)
	}

	Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Requested API is not available."))
	})
}
