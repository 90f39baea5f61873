package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shopkart/backend/pkg/apperr"
	"github.com/shopkart/backend/pkg/models"
)

const productsCollection = "products"

func CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	collection := GetCollection(productsCollection)

	if _, err := collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Newf(apperr.Validation,
				"<title>: <%s> already present in database.", product.Title)
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to create product", err)
	}
	return product, nil
}

func TitleExists(ctx context.Context, title string) (bool, error) {
	collection := GetCollection(productsCollection)

	count, err := collection.CountDocuments(ctx, bson.D{{Key: "title", Value: title}})
	if err != nil {
		return false, apperr.Wrap(apperr.Unexpected, "failed to check title", err)
	}
	return count > 0, nil
}

// GetActiveProduct resolves a product that has not been soft-deleted.
// Cart and order operations only ever see active products.
func GetActiveProduct(ctx context.Context, productID bson.ObjectID) (*models.Product, error) {
	collection := GetCollection(productsCollection)

	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "isDeleted", Value: false},
	}

	var product models.Product
	if err := collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Product with ID <%s> not found (or deleted).", productID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch product", err)
	}
	return &product, nil
}

// GetProductByID fetches regardless of the soft-delete flag so the handler
// can distinguish "never existed" from "already deleted".
func GetProductByID(ctx context.Context, productID bson.ObjectID) (*models.Product, error) {
	collection := GetCollection(productsCollection)

	var product models.Product
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: productID}}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Product with ID <%s> not found.", productID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch product", err)
	}
	return &product, nil
}

// ProductFilter is the GET /products query, already validated.
type ProductFilter struct {
	Sizes            []string
	NameContains     string
	PriceGreaterThan *float64
	PriceLessThan    *float64
	PriceSort        int // 0 none, 1 ascending, -1 descending
}

// ListProducts returns all active products matching the filter.
func ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	collection := GetCollection(productsCollection)

	filter := bson.D{{Key: "isDeleted", Value: false}}

	if len(f.Sizes) > 0 {
		filter = append(filter, bson.E{Key: "availableSizes",
			Value: bson.D{{Key: "$all", Value: f.Sizes}}})
	}
	if f.NameContains != "" {
		filter = append(filter, bson.E{Key: "title", Value: bson.D{
			{Key: "$regex", Value: f.NameContains},
			{Key: "$options", Value: "i"},
		}})
	}
	if f.PriceGreaterThan != nil || f.PriceLessThan != nil {
		price := bson.D{}
		if f.PriceGreaterThan != nil {
			price = append(price, bson.E{Key: "$gte", Value: *f.PriceGreaterThan})
		}
		if f.PriceLessThan != nil {
			price = append(price, bson.E{Key: "$lte", Value: *f.PriceLessThan})
		}
		filter = append(filter, bson.E{Key: "price", Value: price})
	}

	opts := options.Find()
	if f.PriceSort != 0 {
		opts = opts.SetSort(bson.D{{Key: "price", Value: f.PriceSort}})
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "failed to list products", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "failed to decode products", err)
	}
	return products, nil
}

// UpdateProduct applies a $set document to an active product and returns
// the updated document.
func UpdateProduct(ctx context.Context, productID bson.ObjectID, set bson.D) (*models.Product, error) {
	collection := GetCollection(productsCollection)

	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "isDeleted", Value: false},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := collection.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: set}}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Product with ID <%s> not found (or deleted).", productID.Hex())
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.New(apperr.Validation, "<title> already present in database.")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to update product", err)
	}
	return &product, nil
}

// SoftDeleteProduct flags a product deleted without removing the document.
// Historical order line items keep referencing its id.
func SoftDeleteProduct(ctx context.Context, productID bson.ObjectID) (*models.Product, error) {
	collection := GetCollection(productsCollection)

	now := time.Now()
	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "isDeleted", Value: false},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isDeleted", Value: true},
		{Key: "deletedAt", Value: now},
		{Key: "updatedAt", Value: now},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Product with ID <%s> not found (or already deleted).", productID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to delete product", err)
	}
	return &product, nil
}
