package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/pkg/errs"
)

type MongoDBQuoteRepositoryImpl struct {
	db *mongo.Database
}

func CreateQuoteRepository(db *mongo.Database) QuoteRepository {
	return &MongoDBQuoteRepositoryImpl{db: db}
}

func (r *MongoDBQuoteRepositoryImpl) AddQuote(ctx context.Context, data domain.Quote) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("quotes").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddQuote").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBQuoteRepositoryImpl) GetQuotes(ctx context.Context, filter dto.QuoteFilter) (data []domain.Quote, total int64, err error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err = r.db.Collection("quotes").CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetQuotes").Msg("")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(int64(filter.Page-1) * int64(filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.db.Collection("quotes").Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetQuotes").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetQuotes").Msg("")
		return
	}

	return data, total, nil
}

func (r *MongoDBQuoteRepositoryImpl) GetQuoteByID(ctx context.Context, id string) (data domain.Quote, err error) {
	quoteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrNotFound
	}

	err = r.db.Collection("quotes").FindOne(ctx, bson.D{{Key: "_id", Value: quoteID}}).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetQuoteByID").Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBQuoteRepositoryImpl) UpdateQuoteStatus(ctx context.Context, id string, status string) (err error) {
	quoteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := r.db.Collection("quotes").UpdateOne(ctx, bson.D{{Key: "_id", Value: quoteID}}, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateQuoteStatus").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBQuoteRepositoryImpl) DeleteQuote(ctx context.Context, id string) (err error) {
	quoteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	result, err := r.db.Collection("quotes").DeleteOne(ctx, bson.D{{Key: "_id", Value: quoteID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteQuote").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}
