package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkart/backend/pkg/global"
	"github.com/shopkart/backend/pkg/models"
	"github.com/shopkart/backend/pkg/mongo"
	"github.com/shopkart/backend/pkg/token"
	"github.com/shopkart/backend/pkg/validator"
)

func CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}

	if !validator.IsValid(req.Fname) || !validator.IsValidName(req.Fname) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<fname> is required (alphabets and spaces only)."))
		return
	}
	if !validator.IsValid(req.Lname) || !validator.IsValidName(req.Lname) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<lname> is required (alphabets and spaces only)."))
		return
	}
	if !validator.IsValidEmail(strings.TrimSpace(req.Email)) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<email> is required and must be a valid email address."))
		return
	}
	if !validator.IsValidPhone(strings.TrimSpace(req.Phone)) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<phone> must be a valid Indian mobile number."))
		return
	}
	if !validator.IsValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<password> must be 8-15 characters long."))
		return
	}
	if msg, ok := validateAddress("shipping", req.Address.Shipping); !ok {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(msg))
		return
	}
	if msg, ok := validateAddress("billing", req.Address.Billing); !ok {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(msg))
		return
	}

	ctx := c.Request.Context()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := mongo.EmailTaken(ctx, email)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<email> already registered."))
		return
	}

	taken, err = mongo.PhoneTaken(ctx, strings.TrimSpace(req.Phone))
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<phone> already registered."))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password."))
		return
	}

	user, err := mongo.CreateUser(ctx, req.ToUser(string(hashedPassword)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse("User profile created successfully.", user))
}

func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}

	if !validator.IsValidEmail(strings.TrimSpace(req.Email)) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<email> is required and must be a valid email address."))
		return
	}
	if !validator.IsValid(req.Password) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<password> is required."))
		return
	}

	user, err := mongo.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Incorrect password."))
		return
	}

	signed, err := token.Generate(global.GetJWTSecret(), user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue token."))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("Login successful.", map[string]string{
		"userId": user.ID.Hex(),
		"token":  signed,
	}))
}

func GetUserProfile(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	user, err := mongo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("User profile details.", user))
}

func UpdateUserProfile(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}
	if req.IsEmpty() {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Request body empty: nothing to update."))
		return
	}

	set := bson.D{}

	if req.Fname != nil {
		if !validator.IsValid(*req.Fname) || !validator.IsValidName(*req.Fname) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<fname> must be alphabets and spaces only."))
			return
		}
		set = append(set, bson.E{Key: "fname", Value: strings.TrimSpace(*req.Fname)})
	}
	if req.Lname != nil {
		if !validator.IsValid(*req.Lname) || !validator.IsValidName(*req.Lname) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<lname> must be alphabets and spaces only."))
			return
		}
		set = append(set, bson.E{Key: "lname", Value: strings.TrimSpace(*req.Lname)})
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validator.IsValidEmail(email) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<email> must be a valid email address."))
			return
		}
		set = append(set, bson.E{Key: "email", Value: email})
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if !validator.IsValidPhone(phone) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<phone> must be a valid Indian mobile number."))
			return
		}
		set = append(set, bson.E{Key: "phone", Value: phone})
	}
	if req.Password != nil {
		if !validator.IsValidPassword(*req.Password) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<password> must be 8-15 characters long."))
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password."))
			return
		}
		set = append(set, bson.E{Key: "password", Value: string(hashedPassword)})
	}
	if req.Address != nil {
		if msg, ok := validateAddress("shipping", req.Address.Shipping); !ok {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(msg))
			return
		}
		if msg, ok := validateAddress("billing", req.Address.Billing); !ok {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(msg))
			return
		}
		set = append(set, bson.E{Key: "address", Value: *req.Address})
	}
	if req.ProfileImage != nil {
		set = append(set, bson.E{Key: "profileImage", Value: *req.ProfileImage})
	}

	set = append(set, bson.E{Key: "updatedAt", Value: time.Now()})

	user, err := mongo.UpdateUser(c.Request.Context(), userID, set)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("User profile updated successfully.", user))
}

func validateAddress(label string, addr models.Address) (string, bool) {
	if !validator.IsValid(addr.Street) || !validator.IsValidStreet(addr.Street) {
		return "<" + label + "> <street> is required (alphanumerics, -/,.() and spaces only).", false
	}
	if !validator.IsValid(addr.City) || !validator.IsValidCity(addr.City) {
		return "<" + label + "> <city> is required (alphabets, hyphen and spaces only).", false
	}
	if !validator.IsValidPincode(addr.Pincode) {
		return "<" + label + "> <pincode> must be a valid 6-digit Indian pincode.", false
	}
	return "", true
}
