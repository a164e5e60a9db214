package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	pkgdto "github.com/tradewell/storefront/pkg/dto"
)

type OrderRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error

	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id string) (data domain.Order, err error)
	GetOrderByOrderNumber(ctx context.Context, orderNumber string) (data domain.Order, err error)
	UpdateOrder(ctx context.Context, data domain.Order) (err error)
	DeleteOrder(ctx context.Context, id string) (err error)
	GetOrdersByUserID(ctx context.Context, userID string, filter pkgdto.Filter) (data []domain.Order, total int64, err error)
	SearchOrders(ctx context.Context, filter dto.OrderFilter) (data []domain.Order, total int64, err error)
	GetExpiredPendingOrders(ctx context.Context, cutoff time.Time) (data []domain.Order, err error)
}

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, filter dto.ProductFilter, limit int) (data []domain.Product, total int64, filtered int64, err error)
	GetProductByID(ctx context.Context, id string) (data domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)

	// DecrementStockGuarded subtracts qty atomically, conditional on enough
	// stock remaining. ErrInsufficientStock when the guard fails.
	DecrementStockGuarded(ctx context.Context, id string, qty int64) (err error)
	// AdjustStock applies a signed delta atomically, clamping at zero.
	AdjustStock(ctx context.Context, id string, delta int64) (err error)
	UpdateReviews(ctx context.Context, id string, reviews []domain.Review, ratings float64, numOfReviews int64) (err error)
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetUserByEmail(ctx context.Context, email string) (data domain.User, err error)
	GetUserByID(ctx context.Context, id string) (data domain.User, err error)
	GetUserByResetToken(ctx context.Context, token string) (data domain.User, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
}

type QuoteRepository interface {
	AddQuote(ctx context.Context, data domain.Quote) (id primitive.ObjectID, err error)
	GetQuotes(ctx context.Context, filter dto.QuoteFilter) (data []domain.Quote, total int64, err error)
	GetQuoteByID(ctx context.Context, id string) (data domain.Quote, err error)
	UpdateQuoteStatus(ctx context.Context, id string, status string) (err error)
	DeleteQuote(ctx context.Context, id string) (err error)
}
