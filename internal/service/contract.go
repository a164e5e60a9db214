package service

import (
	"context"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	pkgdto "github.com/tradewell/storefront/pkg/dto"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req dto.OrderRequest) (order domain.Order, err error)
	GetOrderByID(ctx context.Context, id string) (order domain.Order, err error)
	GetMyOrders(ctx context.Context, userID string, filter pkgdto.Filter) (resp dto.OrderListResponse, err error)
	SearchOrders(ctx context.Context, filter dto.OrderFilter) (resp dto.OrderListResponse, err error)
	UpdateOrderStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest) (order domain.Order, err error)
	AddTrackingEvent(ctx context.Context, id string, req dto.TrackingEventRequest) (order domain.Order, err error)
	DeleteOrder(ctx context.Context, id string) (err error)
	MidtransPaymentWebhook(ctx context.Context, req dto.PaymentNotification) (err error)
	ExpireUnpaidOrders()
}

type ProductService interface {
	AddProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error)
	GetProducts(ctx context.Context, filter dto.ProductFilter) (resp dto.ProductListResponse, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, id string, req dto.ProductRequest) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	UpsertReview(ctx context.Context, productID string, userID string, userName string, req dto.ReviewRequest) (product domain.Product, err error)
	DeleteReview(ctx context.Context, productID string, reviewID string) (product domain.Product, err error)
}

type UserService interface {
	Register(ctx context.Context, req dto.UserRequest) (err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error)
	// IssuePendingRegistrationToken is called by the OAuth provider callback
	// handler once the provider has vouched for the identity; the returned
	// claim token is what CompleteOAuthRegistration consumes.
	IssuePendingRegistrationToken(name string, email string, provider string) (token string, err error)
	CompleteOAuthRegistration(ctx context.Context, req dto.CompleteOAuthRequest) (resp dto.LoginResponse, err error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error)
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
	AddAddress(ctx context.Context, userID string, req dto.AddressRequest) (user domain.User, err error)
	DeleteAddress(ctx context.Context, userID string, addressID string) (user domain.User, err error)
}

type NotificationService interface {
	Consume(ctx context.Context)
	GetNotifications(ctx context.Context) (data []dto.Notification, err error)
}

type QuoteService interface {
	CreateQuote(ctx context.Context, userID string, req dto.QuoteRequest) (quote domain.Quote, err error)
	GetQuotes(ctx context.Context, filter dto.QuoteFilter) (resp pkgdto.PaginationResponse, err error)
	GetQuoteByID(ctx context.Context, id string) (quote domain.Quote, err error)
	UpdateQuoteStatus(ctx context.Context, id string, status string) (quote domain.Quote, err error)
	DeleteQuote(ctx context.Context, id string) (err error)
}
