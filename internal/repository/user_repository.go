package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/pkg/errs"
)

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("users").InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrEmailAlreadyUsed
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

// GetUserByEmail returns a zero-valued user with nil error when no account
// matches, so callers can branch on ID.IsZero().
func (r *MongoDBUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (data domain.User, err error) {
	err = r.db.Collection("users").FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id string) (data domain.User, err error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrNotFound
	}

	err = r.db.Collection("users").FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByID").Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByResetToken(ctx context.Context, token string) (data domain.User, err error) {
	err = r.db.Collection("users").FindOne(ctx, bson.D{{Key: "reset_token", Value: token}}).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, errs.ErrTokenExpired
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByResetToken").Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBUserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "hashed_password", Value: data.HashedPassword},
		{Key: "phone", Value: data.Phone},
		{Key: "company_name", Value: data.CompanyName},
		{Key: "gst_number", Value: data.GSTNumber},
		{Key: "addresses", Value: data.Addresses},
		{Key: "reset_token", Value: data.ResetToken},
		{Key: "reset_token_expires_at", Value: data.ResetTokenExpiresAt},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := r.db.Collection("users").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUser").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}
