package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order endpoints are still acknowledgement stubs; the document shape is
// defined so request bodies bind and the contract is pinned down.
type Order struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"order_items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shipping_address"`
	PaymentMethod   string             `json:"paymentMethod" bson:"payment_method"`
	PaymentResult   *PaymentResult     `json:"paymentResult,omitempty" bson:"payment_result,omitempty"`
	ItemsPrice      float64            `json:"itemsPrice" bson:"items_price"`
	TaxPrice        float64            `json:"taxPrice" bson:"tax_price"`
	ShippingPrice   float64            `json:"shippingPrice" bson:"shipping_price"`
	TotalPrice      float64            `json:"totalPrice" bson:"total_price"`
	IsPaid          bool               `json:"isPaid" bson:"is_paid"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	IsDelivered     bool               `json:"isDelivered" bson:"is_delivered"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
}

type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Quantity int                `json:"qty" bson:"qty"`
	Image    string             `json:"image" bson:"image"`
	Price    float64            `json:"price" bson:"price"`
}

type ShippingAddress struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

type PaymentResult struct {
	ID         string `json:"id" bson:"id"`
	Status     string `json:"status" bson:"status"`
	UpdateTime string `json:"update_time" bson:"update_time"`
	Email      string `json:"email_address" bson:"email_address"`
}
