package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/database"
	"storefront/internal/models"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(database.ProductsCollection)}
}

func (s *ProductStore) ListInStock(ctx context.Context, page Page) ([]models.Product, error) {
	findOptions := options.Find()
	if !page.IsZero() {
		findOptions.SetSkip(page.Skip).SetLimit(page.Limit)
	}

	cursor, err := s.coll.Find(ctx, bson.M{"inStock": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (s *ProductStore) ListFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	cursor, err := s.coll.Find(
		ctx,
		bson.M{"featured": true, "inStock": true},
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// FindRefs loads name and image for the given product ids. Missing products
// are absent from the result.
func (s *ProductStore) FindRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	refs := make(map[primitive.ObjectID]models.ProductRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	cursor, err := s.coll.Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "image": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var ref models.ProductRef
		if err := cursor.Decode(&ref); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(database.UsersCollection)}
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	res, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (s *UserStore) FindActiveByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email, "isActive": true}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(database.OrdersCollection)}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	res, err := s.coll.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (s *OrderStore) FindByOrderID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection(database.ContactsCollection)}
}

func (s *ContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	res, err := s.coll.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}
	return nil
}

// MongoPinger checks the primary of the client behind db.
type MongoPinger struct {
	db *mongo.Database
}

func NewMongoPinger(db *mongo.Database) *MongoPinger {
	return &MongoPinger{db: db}
}

func (p *MongoPinger) Ping(ctx context.Context) error {
	return p.db.Client().Ping(ctx, readpref.Primary())
}
