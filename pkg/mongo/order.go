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

const ordersCollection = "orders"

// CreateOrderFromCart persists the order snapshot and clears the source
// cart inside one session transaction. Either both happen or neither: a
// failed checkout leaves the cart intact, and the response never races the
// cart clear.
func CreateOrderFromCart(ctx context.Context, order *models.Order) (*models.Order, error) {
	session, err := GetMongoClient().StartSession()
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "failed to start session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if _, err := GetCollection(ordersCollection).InsertOne(sc, order); err != nil {
			return nil, apperr.Wrap(apperr.Unexpected, "failed to create order", err)
		}

		clear := bson.D{{Key: "$set", Value: bson.D{
			{Key: "items", Value: []models.CartItem{}},
			{Key: "totalItems", Value: 0},
			{Key: "totalPrice", Value: 0},
			{Key: "updatedAt", Value: time.Now()},
		}}}
		result, err := GetCollection(cartsCollection).UpdateOne(sc,
			bson.D{{Key: "userId", Value: order.UserID}}, clear)
		if err != nil {
			return nil, apperr.Wrap(apperr.Unexpected, "failed to clear cart", err)
		}
		if result.MatchedCount == 0 {
			return nil, apperr.Newf(apperr.NotFound,
				"Cart for user <%s> not found.", order.UserID.Hex())
		}
		return nil, nil
	})
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, apperr.Wrap(apperr.Unexpected, "checkout transaction failed", err)
	}
	return order, nil
}

// GetOrderForUser resolves an order by id AND owner.
func GetOrderForUser(ctx context.Context, orderID, userID bson.ObjectID) (*models.Order, error) {
	collection := GetCollection(ordersCollection)

	filter := bson.D{
		{Key: "_id", Value: orderID},
		{Key: "userId", Value: userID},
	}

	var order models.Order
	if err := collection.FindOne(ctx, filter).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound,
				"Order with ID <%s> of user <%s> not found.", orderID.Hex(), userID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch order", err)
	}
	return &order, nil
}

// UpdateOrderStatus finalizes a pending order. The filter insists on the
// pending status (and on cancellable for cancellations), so of two
// concurrent finalizers at most one update matches; the loser gets
// InvalidState.
func UpdateOrderStatus(ctx context.Context, orderID, userID bson.ObjectID, target models.OrderStatus) (*models.Order, error) {
	collection := GetCollection(ordersCollection)

	filter := bson.D{
		{Key: "_id", Value: orderID},
		{Key: "userId", Value: userID},
		{Key: "status", Value: models.OrderPending},
	}
	if target == models.OrderCancelled {
		filter = append(filter, bson.E{Key: "cancellable", Value: true})
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: target},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.InvalidState,
				"Order with ID <%s> cannot transition to <%s>.", orderID.Hex(), target)
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to update order", err)
	}
	return &order, nil
}
