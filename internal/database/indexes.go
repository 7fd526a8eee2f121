package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductIndexes back the featured listing filter.
func ProductIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: "featured", Value: 1}, {Key: "inStock", Value: 1}},
		Options: options.Index().SetName("featured_inStock"),
	}}
}

func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	}}
}

// OrderIndexes keep order ids unique and make per-user lookups cheap.
func OrderIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetName("orderId_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
	}
}

func EnsureProductIndexes(db *mongo.Database) error {
	return ensureIndexes(db, ProductsCollection, ProductIndexes())
}

func EnsureUserIndexes(db *mongo.Database) error {
	return ensureIndexes(db, UsersCollection, UserIndexes())
}

func EnsureOrderIndexes(db *mongo.Database) error {
	return ensureIndexes(db, OrdersCollection, OrderIndexes())
}

func ensureIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	names := make([]string, 0, len(models))
	for _, m := range models {
		if m.Options != nil && m.Options.Name != nil {
			names = append(names, *m.Options.Name)
		}
	}

	log.Printf("[DB] [INFO] %s: creating indexes %s", collection, strings.Join(names, ", "))
	if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		log.Printf("[DB] [ERROR] %s: index error: %v", collection, err)
		return err
	}
	return nil
}
