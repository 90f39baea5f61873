package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Currency pairs supported by the catalog. currencyId and currencyFormat
// always travel together.
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"

	CurrencyFormatINR = "₹"
	CurrencyFormatUSD = "$"
)

// CurrencyFormatFor returns the display symbol paired with a currency id.
func CurrencyFormatFor(currencyID string) (string, bool) {
	switch currencyID {
	case CurrencyINR:
		return CurrencyFormatINR, true
	case CurrencyUSD:
		return CurrencyFormatUSD, true
	default:
		return "", false
	}
}

// Product is a catalog entry. Soft-deleted products stay in the collection
// but are invisible to catalog reads and cart/order operations.
type Product struct {
	ID             bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title          string        `json:"title" bson:"title"`
	Description    string        `json:"description" bson:"description"`
	Price          float64       `json:"price" bson:"price"`
	CurrencyID     string        `json:"currencyId" bson:"currencyId"`
	CurrencyFormat string        `json:"currencyFormat" bson:"currencyFormat"`
	IsFreeShipping bool          `json:"isFreeShipping" bson:"isFreeShipping"`
	ProductImage   string        `json:"productImage,omitempty" bson:"productImage,omitempty"`
	Style          string        `json:"style,omitempty" bson:"style,omitempty"`
	AvailableSizes []string      `json:"availableSizes" bson:"availableSizes"`
	Installments   int           `json:"installments,omitempty" bson:"installments,omitempty"`
	DeletedAt      *time.Time    `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	IsDeleted      bool          `json:"isDeleted" bson:"isDeleted"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func (p *Product) IsActive() bool {
	return !p.IsDeleted
}

// SetTimestamps sets createdAt on first call and always updates updatedAt.
func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// CreateProductRequest is the POST /products payload. Price arrives as a
// json.Number so the handler can validate the literal digits before parsing.
type CreateProductRequest struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Price          json.Number `json:"price"`
	CurrencyID     string      `json:"currencyId"`
	CurrencyFormat string      `json:"currencyFormat"`
	IsFreeShipping *bool       `json:"isFreeShipping"`
	ProductImage   string      `json:"productImage"`
	Style          string      `json:"style"`
	AvailableSizes []string    `json:"availableSizes"`
	Installments   *int        `json:"installments"`
}

// ToProduct builds a catalog entry from an already validated request.
// Title is stored lowercase so the unique index is case-insensitive.
func (req *CreateProductRequest) ToProduct(price float64, sizes []string) *Product {
	product := &Product{
		ID:             bson.NewObjectID(),
		Title:          strings.ToLower(strings.TrimSpace(req.Title)),
		Description:    strings.TrimSpace(req.Description),
		Price:          price,
		CurrencyID:     req.CurrencyID,
		CurrencyFormat: req.CurrencyFormat,
		ProductImage:   req.ProductImage,
		Style:          strings.TrimSpace(req.Style),
		AvailableSizes: sizes,
		IsDeleted:      false,
	}
	if req.CurrencyID == "" {
		product.CurrencyID = CurrencyINR
		product.CurrencyFormat = CurrencyFormatINR
	}
	if req.IsFreeShipping != nil {
		product.IsFreeShipping = *req.IsFreeShipping
	}
	if req.Installments != nil {
		product.Installments = *req.Installments
	}
	product.SetTimestamps()
	return product
}

// UpdateProductRequest is the PUT /products/:productId payload. Nil fields
// are left untouched.
type UpdateProductRequest struct {
	Title          *string      `json:"title"`
	Description    *string      `json:"description"`
	Price          *json.Number `json:"price"`
	CurrencyID     *string      `json:"currencyId"`
	CurrencyFormat *string      `json:"currencyFormat"`
	IsFreeShipping *bool        `json:"isFreeShipping"`
	ProductImage   *string      `json:"productImage"`
	Style          *string      `json:"style"`
	AvailableSizes []string     `json:"availableSizes"`
	Installments   *int         `json:"installments"`
}

func (req *UpdateProductRequest) IsEmpty() bool {
	return req.Title == nil && req.Description == nil && req.Price == nil &&
		req.CurrencyID == nil && req.CurrencyFormat == nil &&
		req.IsFreeShipping == nil && req.ProductImage == nil &&
		req.Style == nil && req.AvailableSizes == nil && req.Installments == nil
}
