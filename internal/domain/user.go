package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	HashedPassword      string             `bson:"hashed_password" json:"-"`
	Role                string             `bson:"role" json:"role"`
	Phone               string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CompanyName         string             `bson:"company_name,omitempty" json:"companyName,omitempty"`
	GSTNumber           string             `bson:"gst_number,omitempty" json:"gstNumber,omitempty"`
	OAuthProvider       string             `bson:"oauth_provider,omitempty" json:"-"`
	Addresses           []Address          `bson:"addresses" json:"addresses"`
	ResetToken          string             `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiresAt *time.Time         `bson:"reset_token_expires_at,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Address struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Label   string             `bson:"label" json:"label"`
	Address string             `bson:"address" json:"address"`
	City    string             `bson:"city" json:"city"`
	State   string             `bson:"state" json:"state"`
	Country string             `bson:"country" json:"country"`
	PinCode string             `bson:"pin_code" json:"pinCode"`
	Phone   string             `bson:"phone" json:"phone"`
}
