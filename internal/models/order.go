package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentCreditCard     = "credit_card"
	PaymentDebitCard      = "debit_card"
	PaymentCashOnDelivery = "cash_on_delivery"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// PaymentMethods lists the accepted payment method identifiers.
var PaymentMethods = []string{PaymentCreditCard, PaymentDebitCard, PaymentCashOnDelivery}

// OrderStatuses lists every status an order document may carry.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderItem is a snapshot of a cart line taken at checkout.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order defines the persisted order document.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	Phone           string             `bson:"phone" json:"phone"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ItemsTotal sums price x quantity over the item snapshot.
func (o Order) ItemsTotal() float64 {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total, _ := sum.Float64()
	return total
}

// ProductIDs returns the distinct product ids referenced by the order.
func (o Order) ProductIDs() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(o.Items))
	ids := make([]primitive.ObjectID, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// PopulatedOrderItem is an order line whose product reference has been
// expanded. Product is nil when the referenced product no longer exists.
type PopulatedOrderItem struct {
	Product  *ProductRef `json:"productId"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Quantity int         `json:"quantity"`
}

// PopulatedOrder is the order document as returned by the lookup endpoint.
type PopulatedOrder struct {
	ID              primitive.ObjectID   `json:"_id"`
	OrderID         string               `json:"orderId"`
	UserID          primitive.ObjectID   `json:"userId"`
	Items           []PopulatedOrderItem `json:"items"`
	TotalAmount     float64              `json:"totalAmount"`
	ShippingAddress string               `json:"shippingAddress"`
	Phone           string               `json:"phone"`
	PaymentMethod   string               `json:"paymentMethod"`
	Status          string               `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// Populate expands item product ids using refs.
func (o Order) Populate(refs map[primitive.ObjectID]ProductRef) PopulatedOrder {
	items := make([]PopulatedOrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		line := PopulatedOrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
		if ref, ok := refs[item.ProductID]; ok {
			ref := ref
			line.Product = &ref
		}
		items = append(items, line)
	}

	return PopulatedOrder{
		ID:              o.ID,
		OrderID:         o.OrderID,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
