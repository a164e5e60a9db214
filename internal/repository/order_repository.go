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
	pkgdto "github.com/tradewell/storefront/pkg/dto"
	"github.com/tradewell/storefront/pkg/errs"
	"github.com/tradewell/storefront/pkg/utils"
)

type MongoDBOrderRepositoryImpl struct {
	db *mongo.Database
}

func CreateOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoDBOrderRepositoryImpl{db: db}
}

func (r *MongoDBOrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		err := fn(sessCtx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		}
		return nil, err
	})

	return err
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("orders").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (data domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: orderID}}

	err = r.db.Collection("orders").FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByOrderNumber(ctx context.Context, orderNumber string) (data domain.Order, err error) {
	filter := bson.D{{Key: "order_number", Value: orderNumber}}

	err = r.db.Collection("orders").FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return data, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByOrderNumber").Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) UpdateOrder(ctx context.Context, data domain.Order) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "order_status", Value: data.OrderStatus},
		{Key: "payment_info", Value: data.PaymentInfo},
		{Key: "paid_at", Value: data.PaidAt},
		{Key: "shipped_at", Value: data.ShippedAt},
		{Key: "delivered_at", Value: data.DeliveredAt},
		{Key: "tracking_events", Value: data.TrackingEvents},
		{Key: "tracking_number", Value: data.TrackingNumber},
		{Key: "tracking_url", Value: data.TrackingURL},
		{Key: "consignment_number", Value: data.ConsignmentNumber},
		{Key: "vrl_invoice_link", Value: data.VRLInvoiceLink},
		{Key: "stock_restored", Value: data.StockRestored},
		{Key: "updated_at", Value: time.Now()},
	}}}

	result, err := r.db.Collection("orders").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrder").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBOrderRepositoryImpl) DeleteOrder(ctx context.Context, id string) (err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}

	result, err := r.db.Collection("orders").DeleteOne(ctx, bson.D{{Key: "_id", Value: orderID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrdersByUserID(ctx context.Context, userID string, filter pkgdto.Filter) (data []domain.Order, total int64, err error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, 0, errs.ErrNotFound
	}

	query := bson.M{"user_id": uid}

	total, err = r.db.Collection("orders").CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrdersByUserID").Msg("")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(int64(filter.Page-1) * int64(filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.db.Collection("orders").Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrdersByUserID").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrdersByUserID").Msg("")
		return
	}

	return data, total, nil
}

// sortKeys whitelists the client-facing sort names. Anything else falls back
// to newest-first.
var sortKeys = map[string]string{
	"createdAt":   "created_at",
	"totalPrice":  "total_price",
	"orderStatus": "order_status",
}

// buildOrderSearchQuery translates the admin search filter into a Mongo
// query. Malformed amount and date values are ignored rather than rejected.
func buildOrderSearchQuery(filter dto.OrderFilter) bson.M {
	query := bson.M{}

	if filter.OrderNumber != "" {
		if orderID, idErr := primitive.ObjectIDFromHex(filter.OrderNumber); idErr == nil {
			query["_id"] = orderID
		} else {
			query["order_number"] = filter.OrderNumber
		}
	}

	if filter.CustomerName != "" {
		query["customer.name"] = bson.M{"$regex": filter.CustomerName, "$options": "i"}
	}

	if filter.CustomerEmail != "" {
		query["customer.email"] = bson.M{"$regex": filter.CustomerEmail, "$options": "i"}
	}

	if filter.ProductName != "" {
		query["order_items.name"] = bson.M{"$regex": filter.ProductName, "$options": "i"}
	}

	amountRange := bson.M{}
	if min, parseErr := strconv.ParseFloat(filter.MinAmount, 64); parseErr == nil {
		amountRange["$gte"] = min
	}
	if max, parseErr := strconv.ParseFloat(filter.MaxAmount, 64); parseErr == nil {
		amountRange["$lte"] = max
	}
	if len(amountRange) > 0 {
		query["total_price"] = amountRange
	}

	if filter.Status != "" {
		query["order_status"] = filter.Status
	}

	if filter.PaymentMethod != "" {
		query["payment_info.method"] = filter.PaymentMethod
	}

	dateRange := bson.M{}
	if start, ok := utils.ParseDateParam(filter.StartDate); ok {
		dateRange["$gte"] = start
	}
	if end, ok := utils.ParseDateParam(filter.EndDate); ok {
		// The end date is inclusive for the whole day.
		dateRange["$lte"] = end.Add(24 * time.Hour)
	}
	if len(dateRange) > 0 {
		query["created_at"] = dateRange
	}

	return query
}

func (r *MongoDBOrderRepositoryImpl) SearchOrders(ctx context.Context, filter dto.OrderFilter) (data []domain.Order, total int64, err error) {
	query := buildOrderSearchQuery(filter)

	total, err = r.db.Collection("orders").CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchOrders").Msg("")
		return
	}

	sortField, ok := sortKeys[filter.SortBy]
	if !ok {
		sortField = "created_at"
	}

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})
	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(int64(filter.Page-1) * int64(filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.db.Collection("orders").Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchOrders").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchOrders").Msg("")
		return
	}

	return data, total, nil
}

func (r *MongoDBOrderRepositoryImpl) GetExpiredPendingOrders(ctx context.Context, cutoff time.Time) (data []domain.Order, err error) {
	query := bson.M{
		"payment_info.status": domain.PaymentStatusPending,
		"order_status":        domain.OrderStatusProcessing,
		"created_at":          bson.M{"$lt": cutoff},
	}

	cursor, err := r.db.Collection("orders").Find(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetExpiredPendingOrders").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetExpiredPendingOrders").Msg("")
		return
	}

	return data, nil
}
