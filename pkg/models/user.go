package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Address is one postal address: Indian-format street/city/pincode.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// UserAddress pairs the shipping and billing addresses.
type UserAddress struct {
	Shipping Address `json:"shipping" bson:"shipping"`
	Billing  Address `json:"billing" bson:"billing"`
}

// User is a registered shopper. The password field holds the bcrypt hash
// and is never serialized to JSON.
type User struct {
	ID           bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Fname        string        `json:"fname" bson:"fname"`
	Lname        string        `json:"lname" bson:"lname"`
	Email        string        `json:"email" bson:"email"`
	Phone        string        `json:"phone" bson:"phone"`
	Password     string        `json:"-" bson:"password"`
	Address      UserAddress   `json:"address" bson:"address"`
	ProfileImage string        `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SetTimestamps sets createdAt on first call and always updates updatedAt.
func (u *User) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// CreateUserRequest is the POST /register payload.
type CreateUserRequest struct {
	Fname        string      `json:"fname"`
	Lname        string      `json:"lname"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Password     string      `json:"password"`
	Address      UserAddress `json:"address"`
	ProfileImage string      `json:"profileImage"`
}

// ToUser builds a user from a validated request with an already hashed
// password. Email is stored lowercase so the unique index is
// case-insensitive.
func (req *CreateUserRequest) ToUser(hashedPassword string) *User {
	user := &User{
		ID:           bson.NewObjectID(),
		Fname:        strings.TrimSpace(req.Fname),
		Lname:        strings.TrimSpace(req.Lname),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Password:     hashedPassword,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	}
	user.SetTimestamps()
	return user
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the PUT /user/:userId/profile payload. Nil fields
// are left untouched.
type UpdateUserRequest struct {
	Fname        *string      `json:"fname"`
	Lname        *string      `json:"lname"`
	Email        *string      `json:"email"`
	Phone        *string      `json:"phone"`
	Password     *string      `json:"password"`
	Address      *UserAddress `json:"address"`
	ProfileImage *string      `json:"profileImage"`
}

func (req *UpdateUserRequest) IsEmpty() bool {
	return req.Fname == nil && req.Lname == nil && req.Email == nil &&
		req.Phone == nil && req.Password == nil && req.Address == nil &&
		req.ProfileImage == nil
}
