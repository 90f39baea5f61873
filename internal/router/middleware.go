package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopkart/backend/pkg/global"
	"github.com/shopkart/backend/pkg/token"
)

// Authentication verifies the Bearer token and stores the authenticated
// user id on the context.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authorization header required."))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) != 2 {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token format."))
			c.Abort()
			return
		}

		claims, err := token.Validate(global.GetJWTSecret(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token."))
			c.Abort()
			return
		}

		c.Set("authUserId", claims.UserID)
		c.Next()
	}
}

// Authorization requires the token subject to match the :userId path param.
func Authorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		authUserID, exists := c.Get("authUserId")
		if !exists {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized."))
			c.Abort()
			return
		}

		if authUserID != strings.TrimSpace(c.Param("userId")) {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Not authorized to access this user's resources."))
			c.Abort()
			return
		}

		c.Next()
	}
}
