package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	CuttedPrice  float64            `bson:"cutted_price" json:"cuttedPrice"`
	Category     string             `bson:"category" json:"category"`
	SubCategory  string             `bson:"sub_category" json:"subCategory"`
	Stock        int64              `bson:"stock" json:"stock"`
	Ratings      float64            `bson:"ratings" json:"ratings"`
	NumOfReviews int64              `bson:"num_of_reviews" json:"numOfReviews"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	OrderConfig  OrderConfig        `bson:"order_config" json:"orderConfig"`
	Images       []ProductImage     `bson:"images" json:"images"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// OrderConfig holds the unit-pricing tiers a product can be ordered in.
// Exactly one unit carries IsDefault after create or update.
type OrderConfig struct {
	Units []ProductUnit `bson:"units" json:"units"`
}

type ProductUnit struct {
	Unit      string  `bson:"unit" json:"unit"`
	Quantity  int64   `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	IsDefault bool    `bson:"is_default" json:"isDefault"`
}

type ProductImage struct {
	PublicID string `bson:"public_id" json:"publicId"`
	URL      string `bson:"url" json:"url"`
}
