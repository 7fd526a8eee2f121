package database

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

const (
	ProductsCollection = "products"
	UsersCollection    = "users"
	ContactsCollection = "contacts"
	OrdersCollection   = "orders"
)

// namespaceNotFound is returned by collMod when the collection is missing.
const namespaceNotFound = 26

var numberTypes = bson.A{"double", "int", "long", "decimal"}

// Validators maps each collection to its $jsonSchema document.
func Validators() map[string]bson.M {
	return map[string]bson.M{
		ProductsCollection: productSchema(),
		UsersCollection:    userSchema(),
		ContactsCollection: contactSchema(),
		OrdersCollection:   orderSchema(),
	}
}

func productSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "price"},
		"properties": bson.M{
			"name":     bson.M{"bsonType": "string"},
			"price":    bson.M{"bsonType": numberTypes, "minimum": 0},
			"inStock":  bson.M{"bsonType": "bool"},
			"featured": bson.M{"bsonType": "bool"},
		},
	}}
}

func userSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "email", "password"},
		"properties": bson.M{
			"name":     bson.M{"bsonType": "string"},
			"email":    bson.M{"bsonType": "string"},
			"password": bson.M{"bsonType": "string"},
			"isActive": bson.M{"bsonType": "bool"},
		},
	}}
}

func contactSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "email", "message"},
		"properties": bson.M{
			"name":    bson.M{"bsonType": "string"},
			"email":   bson.M{"bsonType": "string"},
			"message": bson.M{"bsonType": "string"},
		},
	}}
}

func orderSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{
			"orderId", "userId", "items", "totalAmount",
			"shippingAddress", "phone", "paymentMethod", "status",
		},
		"properties": bson.M{
			"orderId":         bson.M{"bsonType": "string"},
			"userId":          bson.M{"bsonType": "objectId"},
			"totalAmount":     bson.M{"bsonType": numberTypes, "minimum": 0},
			"shippingAddress": bson.M{"bsonType": "string"},
			"phone":           bson.M{"bsonType": "string"},
			"paymentMethod":   bson.M{"enum": toArray(models.PaymentMethods)},
			"status":          bson.M{"enum": toArray(models.OrderStatuses)},
			"items": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"productId", "name", "price", "quantity"},
					"properties": bson.M{
						"productId": bson.M{"bsonType": "objectId"},
						"name":      bson.M{"bsonType": "string"},
						"price":     bson.M{"bsonType": numberTypes},
						"quantity":  bson.M{"bsonType": numberTypes, "minimum": 1},
					},
				},
			},
		},
	}}
}

func toArray(values []string) bson.A {
	out := make(bson.A, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// EnsureValidators attaches the schema validators, creating collections that
// do not exist yet.
func EnsureValidators(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for name, validator := range Validators() {
		err := db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}).Err()

		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == namespaceNotFound {
			log.Printf("EnsureValidators: creating collection %s", name)
			err = db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
		}
		if err != nil {
			log.Printf("EnsureValidators: %s validator error: %v", name, err)
			return err
		}
	}
	return nil
}
