package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type ProductReader interface {
	ListInStock(ctx context.Context, page repository.Page) ([]models.Product, error)
	ListFeatured(ctx context.Context, limit int64) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error)
}

type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	FindActiveByEmail(ctx context.Context, email string) (models.User, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByOrderID(ctx context.Context, orderID string) (models.Order, error)
}

type ContactWriter interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}
