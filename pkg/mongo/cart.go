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

const cartsCollection = "carts"

// Cart totals (totalItems, totalPrice) are always written in the same
// conditional update as the item array mutation, so a concurrent writer can
// never observe or produce a cart where the two disagree.

func GetCartByUserID(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	collection := GetCollection(cartsCollection)

	var cart models.Cart
	err := collection.FindOne(ctx, bson.D{{Key: "userId", Value: userID}}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Cart for user <%s> not found.", userID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch cart", err)
	}
	return &cart, nil
}

// GetCartForUser resolves a cart by id AND owner, so a caller can never
// operate on another user's cart.
func GetCartForUser(ctx context.Context, cartID, userID bson.ObjectID) (*models.Cart, error) {
	collection := GetCollection(cartsCollection)

	filter := bson.D{
		{Key: "_id", Value: cartID},
		{Key: "userId", Value: userID},
	}

	var cart models.Cart
	if err := collection.FindOne(ctx, filter).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Cart with ID <%s> of user <%s> not found.", cartID.Hex(), userID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch cart", err)
	}
	return &cart, nil
}

// AddProductToCart adds one unit of a product to the user's cart, creating
// the cart lazily on first use. The increment and append paths are both
// single conditional updates so two concurrent adds cannot lose a unit.
func AddProductToCart(ctx context.Context, userID bson.ObjectID, product *models.Product) (*models.Cart, error) {
	cart, err := GetCartByUserID(ctx, userID)
	if err != nil {
		if !apperr.IsKind(err, apperr.NotFound) {
			return nil, err
		}
		// No cart yet: create one holding the first unit.
		cart = models.NewCart(userID)
		cart.AddUnit(product.ID, product.Price)
		if _, insErr := GetCollection(cartsCollection).InsertOne(ctx, cart); insErr != nil {
			if !mongo.IsDuplicateKeyError(insErr) {
				return nil, apperr.Wrap(apperr.Unexpected, "failed to create cart", insErr)
			}
			// Lost the creation race; fall through to the update paths.
			if cart, err = GetCartByUserID(ctx, userID); err != nil {
				return nil, err
			}
		} else {
			return cart, nil
		}
	}

	if cart.ItemIndex(product.ID) >= 0 {
		return incrementCartItem(ctx, userID, product)
	}

	updated, err := appendCartItem(ctx, cart.ID, product)
	if err == nil || !apperr.IsKind(err, apperr.NotFound) {
		return updated, err
	}
	// The append filter excludes carts already holding the product; a miss
	// means a concurrent add got there first, so increment instead.
	return incrementCartItem(ctx, userID, product)
}

// incrementCartItem bumps an existing line item by one unit. totalItems is
// untouched; totalPrice grows by the unit price.
func incrementCartItem(ctx context.Context, userID bson.ObjectID, product *models.Product) (*models.Cart, error) {
	collection := GetCollection(cartsCollection)

	filter := bson.D{
		{Key: "userId", Value: userID},
		{Key: "items.productId", Value: product.ID},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{
			{Key: "items.$.quantity", Value: 1},
			{Key: "totalPrice", Value: product.Price},
		}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart models.Cart
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Product with ID <%s> not found in user's cart.", product.ID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to update cart", err)
	}
	return &cart, nil
}

// appendCartItem pushes a new quantity-1 line item. The filter requires the
// product to be absent so a duplicate line can never be created.
func appendCartItem(ctx context.Context, cartID bson.ObjectID, product *models.Product) (*models.Cart, error) {
	collection := GetCollection(cartsCollection)

	filter := bson.D{
		{Key: "_id", Value: cartID},
		{Key: "items.productId", Value: bson.D{{Key: "$ne", Value: product.ID}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "items", Value: models.CartItem{
			ProductID: product.ID,
			Quantity:  1,
		}}}},
		{Key: "$inc", Value: bson.D{
			{Key: "totalItems", Value: 1},
			{Key: "totalPrice", Value: product.Price},
		}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart models.Cart
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Cart with ID <%s> not found (or product already present).", cartID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to update cart", err)
	}
	return &cart, nil
}

// RemoveProductFromCart removes a product line entirely (RemoveFull) or
// takes one unit off it (DecrementOne). A quantity-1 line item is removed
// entirely in both modes.
func RemoveProductFromCart(ctx context.Context, cart *models.Cart, product *models.Product, mode models.RemoveMode) (*models.Cart, error) {
	quantity := cart.Quantity(product.ID)
	if quantity == 0 {
		return nil, apperr.Newf(apperr.NotFound,
			"Product with ID <%s> not found in user's cart.", product.ID.Hex())
	}

	collection := GetCollection(cartsCollection)
	filter := bson.D{
		{Key: "_id", Value: cart.ID},
		{Key: "items.productId", Value: product.ID},
	}

	var update bson.D
	if mode == models.RemoveFull || quantity == 1 {
		update = bson.D{
			{Key: "$pull", Value: bson.D{{Key: "items", Value: bson.D{
				{Key: "productId", Value: product.ID},
			}}}},
			{Key: "$inc", Value: bson.D{
				{Key: "totalItems", Value: -1},
				{Key: "totalPrice", Value: -product.Price * float64(quantity)},
			}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		}
	} else {
		update = bson.D{
			{Key: "$inc", Value: bson.D{
				{Key: "items.$.quantity", Value: -1},
				{Key: "totalPrice", Value: -product.Price},
			}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Cart
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Product with ID <%s> not found in user's cart.", product.ID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to update cart", err)
	}
	return &updated, nil
}

// ClearCart resets the item array and both totals in one update. Used for
// explicit cart deletion; checkout clears inside its transaction instead.
func ClearCart(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	collection := GetCollection(cartsCollection)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "items", Value: []models.CartItem{}},
		{Key: "totalItems", Value: 0},
		{Key: "totalPrice", Value: 0},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart models.Cart
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "userId", Value: userID}}, update, opts).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Cart for user <%s> not found.", userID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to clear cart", err)
	}
	return &cart, nil
}

// CartItemDetail is a line item with its product resolved for display.
type CartItemDetail struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// CartDetails is the GET cart response: the cart with product details
// joined in.
type CartDetails struct {
	ID         bson.ObjectID    `json:"_id"`
	UserID     bson.ObjectID    `json:"userId"`
	Items      []CartItemDetail `json:"items"`
	TotalPrice float64          `json:"totalPrice"`
	TotalItems int              `json:"totalItems"`
}

// GetCartDetails fetches the user's cart with each line item's product
// joined via $lookup.
func GetCartDetails(ctx context.Context, userID bson.ObjectID) (*CartDetails, error) {
	collection := GetCollection(cartsCollection)

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: productsCollection},
			{Key: "localField", Value: "items.productId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "productDetails"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch cart", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		models.Cart    `bson:",inline"`
		ProductDetails []models.Product `bson:"productDetails"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "failed to decode cart", err)
	}
	if len(results) == 0 {
		return nil, apperr.Newf(apperr.NotFound, "Cart for user <%s> not found.", userID.Hex())
	}

	raw := results[0]
	byID := make(map[bson.ObjectID]models.Product, len(raw.ProductDetails))
	for _, p := range raw.ProductDetails {
		byID[p.ID] = p
	}

	details := &CartDetails{
		ID:         raw.Cart.ID,
		UserID:     raw.Cart.UserID,
		Items:      make([]CartItemDetail, 0, len(raw.Cart.Items)),
		TotalPrice: raw.Cart.TotalPrice,
		TotalItems: raw.Cart.TotalItems,
	}
	for _, item := range raw.Cart.Items {
		details.Items = append(details.Items, CartItemDetail{
			Product:  byID[item.ProductID],
			Quantity: item.Quantity,
		})
	}
	return details, nil
}
