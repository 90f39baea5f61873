package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shopkart/backend/pkg/apperr"
	"github.com/shopkart/backend/pkg/models"
)

const usersCollection = "users"

func CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	collection := GetCollection(usersCollection)

	if _, err := collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.New(apperr.Validation, "Email or phone already registered.")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to create user", err)
	}
	return user, nil
}

func GetUserByID(ctx context.Context, userID bson.ObjectID) (*models.User, error) {
	collection := GetCollection(usersCollection)

	var user models.User
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound, "User with ID <%s> not found.", userID.Hex())
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch user", err)
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	collection := GetCollection(usersCollection)

	var user models.User
	err := collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound, "No user registered with email <%s>.", email)
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to fetch user", err)
	}
	return &user, nil
}

// EmailTaken and PhoneTaken back the registration pre-checks; the unique
// indexes remain the enforcement of record.

func EmailTaken(ctx context.Context, email string) (bool, error) {
	collection := GetCollection(usersCollection)

	count, err := collection.CountDocuments(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return false, apperr.Wrap(apperr.Unexpected, "failed to check email", err)
	}
	return count > 0, nil
}

func PhoneTaken(ctx context.Context, phone string) (bool, error) {
	collection := GetCollection(usersCollection)

	count, err := collection.CountDocuments(ctx, bson.D{{Key: "phone", Value: phone}})
	if err != nil {
		return false, apperr.Wrap(apperr.Unexpected, "failed to check phone", err)
	}
	return count > 0, nil
}

// UpdateUser applies a $set document and returns the updated user.
func UpdateUser(ctx context.Context, userID bson.ObjectID, set bson.D) (*models.User, error) {
	collection := GetCollection(usersCollection)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.NotFound, "User with ID <%s> not found.", userID.Hex())
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.New(apperr.Validation, "Email or phone already registered.")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "failed to update user", err)
	}
	return &user, nil
}
