package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QuoteStatusPending    = "pending"
	QuoteStatusProcessing = "processing"
	QuoteStatusCompleted  = "completed"
	QuoteStatusRejected   = "rejected"
)

var quoteStatuses = map[string]bool{
	QuoteStatusPending:    true,
	QuoteStatusProcessing: true,
	QuoteStatusCompleted:  true,
	QuoteStatusRejected:   true,
}

func IsValidQuoteStatus(status string) bool {
	return quoteStatuses[status]
}

// Quote is a buyer's request for pricing on a free-form product list,
// independent of the cart/checkout flow. UserID is zero for anonymous
// submissions.
type Quote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	Items     []QuoteItem        `bson:"items" json:"items"`
	FileURL   string             `bson:"file_url,omitempty" json:"fileUrl,omitempty"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type QuoteItem struct {
	ProductName string `bson:"product_name" json:"productName"`
	Quantity    int64  `bson:"quantity" json:"quantity"`
}
