package router

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shopkart/backend/pkg/global"
	"github.com/shopkart/backend/pkg/models"
	"github.com/shopkart/backend/pkg/mongo"
	"github.com/shopkart/backend/pkg/redis"
	"github.com/shopkart/backend/pkg/validator"
)

func CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}

	if !validator.IsValid(req.Title) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<title> is required."))
		return
	}
	if !validator.IsValid(req.Description) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<description> is required."))
		return
	}
	if !validator.IsValidPrice(req.Price.String()) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"<price> must be a positive number: at most 8 integer digits and 2 decimal places."))
		return
	}
	price, err := req.Price.Float64()
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<price> must be a number."))
		return
	}

	if len(req.AvailableSizes) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<availableSizes> is required."))
		return
	}
	sizes, invalid := validator.NormalizeSizes(req.AvailableSizes)
	if len(invalid) > 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"Invalid <availableSizes>: <"+strings.Join(invalid, ",")+">. Should be among "+
				strings.Join(validator.ValidSizes, ", ")+"."))
		return
	}

	if req.Installments != nil && !validator.IsValidInstallment(strconv.Itoa(*req.Installments)) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("<installments> can be a number between 1-99 only."))
		return
	}

	if req.CurrencyID != "" {
		expectedFormat, ok := models.CurrencyFormatFor(req.CurrencyID)
		if !ok {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"<currencyId> must be either <"+models.CurrencyINR+"> or <"+models.CurrencyUSD+">."))
			return
		}
		if req.CurrencyFormat != "" && req.CurrencyFormat != expectedFormat {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"<currencyFormat> does not match <currencyId>."))
			return
		}
		req.CurrencyFormat = expectedFormat
	} else if req.CurrencyFormat != "" && req.CurrencyFormat != models.CurrencyFormatINR {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"<currencyFormat> must be <"+models.CurrencyFormatINR+"> when <currencyId> is absent."))
		return
	}

	ctx := c.Request.Context()

	title := strings.ToLower(strings.TrimSpace(req.Title))
	exists, err := mongo.TitleExists(ctx, title)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"<title>: <"+title+"> already present in database."))
		return
	}

	product, err := mongo.CreateProduct(ctx, req.ToProduct(price, sizes))
	if err != nil {
		respondError(c, err)
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse("Product created successfully.", product))
}

func GetProducts(c *gin.Context) {
	var filter mongo.ProductFilter

	if size := c.Query("size"); size != "" {
		sizes, invalid := validator.NormalizeSizes(strings.Split(size, ","))
		if len(invalid) > 0 {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"Invalid <size>: <"+strings.Join(invalid, ",")+">. Should be among "+
					strings.Join(validator.ValidSizes, ", ")+"."))
			return
		}
		filter.Sizes = sizes
	}

	if name := c.Query("name"); name != "" {
		filter.NameContains = name
	}

	if raw := c.Query("priceGreaterThan"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<priceGreaterThan> must be a number."))
			return
		}
		filter.PriceGreaterThan = &value
	}

	if raw := c.Query("priceLessThan"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<priceLessThan> must be a number."))
			return
		}
		filter.PriceLessThan = &value
	}

	if raw := c.Query("priceSort"); raw != "" {
		if raw != "1" && raw != "-1" {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"<priceSort> must be <1> for ascending or <-1> for descending."))
			return
		}
		filter.PriceSort, _ = strconv.Atoi(raw)
	}

	products, err := mongo.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, global.ErrorResponse("No products found."))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse("Fetched products successfully.", products))
}

// GetProductByID serves a product, trying the Redis cache before MongoDB.
func GetProductByID(c *gin.Context) {
	productID, ok := parseObjectIDParam(c, "productId")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if product, err := redis.GetProductFromCache(ctx, productID.Hex()); err == nil && product.IsActive() {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse("Fetched product by ID.", product))
		return
	}

	product, err := mongo.GetProductByID(ctx, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	if product.IsDeleted {
		c.JSON(http.StatusNotFound, global.ErrorResponse(
			"Product with ID <"+productID.Hex()+"> already deleted."))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse("Fetched product by ID.", product))
}

func UpdateProductByID(c *gin.Context) {
	productID, ok := parseObjectIDParam(c, "productId")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body."))
		return
	}
	if req.IsEmpty() {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Request body empty: nothing to update."))
		return
	}

	set := bson.D{}

	if req.Title != nil {
		if !validator.IsValid(*req.Title) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<title> cannot be empty."))
			return
		}
		set = append(set, bson.E{Key: "title", Value: strings.ToLower(strings.TrimSpace(*req.Title))})
	}
	if req.Description != nil {
		if !validator.IsValid(*req.Description) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<description> cannot be empty."))
			return
		}
		set = append(set, bson.E{Key: "description", Value: strings.TrimSpace(*req.Description)})
	}
	if req.Price != nil {
		if !validator.IsValidPrice(req.Price.String()) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"<price> must be a positive number: at most 8 integer digits and 2 decimal places."))
			return
		}
		price, err := req.Price.Float64()
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<price> must be a number."))
			return
		}
		set = append(set, bson.E{Key: "price", Value: price})
	}
	if req.CurrencyID != nil {
		format, ok := models.CurrencyFormatFor(*req.CurrencyID)
		if !ok {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"<currencyId> must be either <"+models.CurrencyINR+"> or <"+models.CurrencyUSD+">."))
			return
		}
		if req.CurrencyFormat != nil && *req.CurrencyFormat != format {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"<currencyFormat> does not match <currencyId>."))
			return
		}
		set = append(set,
			bson.E{Key: "currencyId", Value: *req.CurrencyID},
			bson.E{Key: "currencyFormat", Value: format})
	} else if req.CurrencyFormat != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			"<currencyFormat> cannot be updated without <currencyId>."))
		return
	}
	if req.IsFreeShipping != nil {
		set = append(set, bson.E{Key: "isFreeShipping", Value: *req.IsFreeShipping})
	}
	if req.ProductImage != nil {
		set = append(set, bson.E{Key: "productImage", Value: *req.ProductImage})
	}
	if req.Style != nil {
		set = append(set, bson.E{Key: "style", Value: strings.TrimSpace(*req.Style)})
	}
	if req.AvailableSizes != nil {
		sizes, invalid := validator.NormalizeSizes(req.AvailableSizes)
		if len(invalid) > 0 || len(sizes) == 0 {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(
				"Invalid <availableSizes>. Should be among "+strings.Join(validator.ValidSizes, ", ")+"."))
			return
		}
		set = append(set, bson.E{Key: "availableSizes", Value: sizes})
	}
	if req.Installments != nil {
		if !validator.IsValidInstallment(strconv.Itoa(*req.Installments)) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("<installments> can be a number between 1-99 only."))
			return
		}
		set = append(set, bson.E{Key: "installments", Value: *req.Installments})
	}

	set = append(set, bson.E{Key: "updatedAt", Value: time.Now()})

	ctx := c.Request.Context()
	product, err := mongo.UpdateProduct(ctx, productID, set)
	if err != nil {
		respondError(c, err)
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: Failed to refresh product cache in Redis: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse("Product updated successfully.", product))
}

func DeleteProductByID(c *gin.Context) {
	productID, ok := parseObjectIDParam(c, "productId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	product, err := mongo.SoftDeleteProduct(ctx, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	if cacheErr := redis.RemoveProductFromCache(ctx, productID.Hex()); cacheErr != nil {
		log.Printf("Warning: Failed to remove product from Redis cache: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse("Product deleted successfully.", product))
}
