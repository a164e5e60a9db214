package repository

import (
	"context"
	"strconv"
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

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("products").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter dto.ProductFilter, limit int) (data []domain.Product, total int64, filtered int64, err error) {
	total, err = r.db.Collection("products").CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	query := bson.M{}

	if filter.Keyword != "" {
		regex := bson.M{"$regex": filter.Keyword, "$options": "i"}
		query["$or"] = []bson.M{
			{"name": regex},
			{"category": regex},
		}
	}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	priceRange := bson.M{}
	if gte, parseErr := strconv.ParseFloat(filter.PriceGte, 64); parseErr == nil {
		priceRange["$gte"] = gte
	}
	if lte, parseErr := strconv.ParseFloat(filter.PriceLte, 64); parseErr == nil {
		priceRange["$lte"] = lte
	}
	if len(priceRange) > 0 {
		query["price"] = priceRange
	}

	if gte, parseErr := strconv.ParseFloat(filter.RatingsGte, 64); parseErr == nil {
		query["ratings"] = bson.M{"$gte": gte}
	}

	filtered, err = r.db.Collection("products").CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Page > 0 && limit > 0 {
		opts = opts.SetSkip(int64(filter.Page-1) * int64(limit)).SetLimit(int64(limit))
	}

	cursor, err := r.db.Collection("products").Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, total, filtered, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (data domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection("products").FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "description", Value: data.Description},
		{Key: "price", Value: data.Price},
		{Key: "cutted_price", Value: data.CuttedPrice},
		{Key: "category", Value: data.Category},
		{Key: "sub_category", Value: data.SubCategory},
		{Key: "stock", Value: data.Stock},
		{Key: "order_config", Value: data.OrderConfig},
		{Key: "images", Value: data.Images},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	result, err := r.db.Collection("products").DeleteOne(ctx, bson.D{{Key: "_id", Value: productID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DecrementStockGuarded(ctx context.Context, id string, qty int64) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "stock", Value: bson.D{{Key: "$gte", Value: qty}}},
	}

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "stock", Value: -qty}}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecrementStockGuarded").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		// Either the product is gone or the guard failed; tell them apart
		// so checkout can report the right error.
		count, countErr := r.db.Collection("products").CountDocuments(ctx, bson.D{{Key: "_id", Value: productID}})
		if countErr == nil && count == 0 {
			return errs.ErrNotFound
		}
		return errs.ErrInsufficientStock
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) AdjustStock(ctx context.Context, id string, delta int64) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	// Pipeline update keeps the adjustment atomic while clamping at zero.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "stock", Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$add", Value: bson.A{"$stock", delta}}},
				}},
			}},
		}}},
	}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AdjustStock").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) UpdateReviews(ctx context.Context, id string, reviews []domain.Review, ratings float64, numOfReviews int64) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "reviews", Value: reviews},
		{Key: "ratings", Value: ratings},
		{Key: "num_of_reviews", Value: numOfReviews},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateReviews").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}
