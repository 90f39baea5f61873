package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shopkart/backend/pkg/apperr"
	"github.com/shopkart/backend/pkg/global"
	"github.com/shopkart/backend/pkg/mongo"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed."))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("OK", map[string]string{"database": "connected"}))
}

// respondError maps the error taxonomy onto the response envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.StatusCode(err), global.ErrorResponse(apperr.Message(err)))
}

// parseObjectIDParam reads a path parameter as an ObjectID, answering 400
// itself when the value is malformed.
func parseObjectIDParam(c *gin.Context, name string) (bson.ObjectID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"<"+name+"> in params: <"+raw+"> is not a valid object ID."))
		return bson.ObjectID{}, false
	}
	return id, true
}

// parseObjectIDField reads a request-body field as an ObjectID.
func parseObjectIDField(c *gin.Context, name, value string) (bson.ObjectID, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<"+name+"> is required."))
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"<"+name+">: <"+raw+"> is not a valid object ID."))
		return bson.ObjectID{}, false
	}
	return id, true
}
