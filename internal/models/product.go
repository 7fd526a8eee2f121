package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeaturedLimit caps how many featured products the catalog returns.
const FeaturedLimit = 6

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProductRef is the subset of a product embedded into order responses.
type ProductRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image" json:"image"`
}

func (p Product) Ref() ProductRef {
	return ProductRef{ID: p.ID, Name: p.Name, Image: p.Image}
}
