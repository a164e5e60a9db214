package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusExpired = "expired"

	TrackingStatusOrderPlaced    = "Order Placed"
	TrackingStatusInTransit      = "In Transit"
	TrackingStatusOutForDelivery = "Out for Delivery"
)

// trackingStatuses is the fixed set a tracking event may carry. Statuses
// other than "Order Placed" double as order statuses.
var trackingStatuses = map[string]bool{
	TrackingStatusOrderPlaced:    true,
	OrderStatusProcessing:        true,
	OrderStatusShipped:           true,
	TrackingStatusInTransit:      true,
	TrackingStatusOutForDelivery: true,
	OrderStatusDelivered:         true,
	OrderStatusCancelled:         true,
}

func IsValidTrackingStatus(status string) bool {
	return trackingStatuses[status]
}

func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber       string             `bson:"order_number" json:"orderNumber"`
	UserID            primitive.ObjectID `bson:"user_id,omitempty" json:"userId"`
	Customer          Customer           `bson:"customer" json:"customer"`
	ShippingInfo      ShippingInfo       `bson:"shipping_info" json:"shippingInfo"`
	OrderItems        []OrderItem        `bson:"order_items" json:"orderItems"`
	PaymentInfo       PaymentInfo        `bson:"payment_info" json:"paymentInfo"`
	ItemsPrice        float64            `bson:"items_price" json:"itemsPrice"`
	ShippingPrice     float64            `bson:"shipping_price" json:"shippingPrice"`
	Discount          float64            `bson:"discount" json:"discount"`
	TotalPrice        float64            `bson:"total_price" json:"totalPrice"`
	OrderStatus       string             `bson:"order_status" json:"orderStatus"`
	IsSampleOrder     bool               `bson:"is_sample_order" json:"isSampleOrder"`
	StockRestored     bool               `bson:"stock_restored" json:"-"`
	PaidAt            *time.Time         `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	ShippedAt         *time.Time         `bson:"shipped_at,omitempty" json:"shippedAt,omitempty"`
	DeliveredAt       *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	TrackingEvents    []TrackingEvent    `bson:"tracking_events" json:"trackingEvents"`
	TrackingNumber    string             `bson:"tracking_number,omitempty" json:"trackingNumber,omitempty"`
	TrackingURL       string             `bson:"tracking_url,omitempty" json:"trackingUrl,omitempty"`
	ConsignmentNumber string             `bson:"consignment_number,omitempty" json:"consignmentNumber,omitempty"`
	VRLInvoiceLink    string             `bson:"vrl_invoice_link,omitempty" json:"vrlInvoiceLink,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Customer is a snapshot of the ordering user's name and email taken at
// checkout so admin search does not need a join.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

type ShippingInfo struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
	PinCode string `bson:"pin_code" json:"pinCode"`
	Phone   string `bson:"phone" json:"phone"`
}

// OrderItem is an immutable snapshot of a product at checkout. Later
// product edits never change what a placed order displays.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image" json:"image"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
	Unit      string             `bson:"unit" json:"unit"`
}

type PaymentInfo struct {
	TransactionID string `bson:"transaction_id" json:"transactionId"`
	Method        string `bson:"method" json:"method"`
	Status        string `bson:"status" json:"status"`
}

type TrackingEvent struct {
	Status      string    `bson:"status" json:"status"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Description string    `bson:"description" json:"description"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}
