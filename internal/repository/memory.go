package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

type MemoryProductStore struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryProductStore(seed ...models.Product) *MemoryProductStore {
	s := &MemoryProductStore{}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products = append(s.products, p)
	}
	return s
}

func (s *MemoryProductStore) ListInStock(_ context.Context, page Page) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.InStock {
			matched = append(matched, p)
		}
	}
	return paginate(matched, page), nil
}

func (s *MemoryProductStore) ListFeatured(_ context.Context, limit int64) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Product, 0)
	for _, p := range s.products {
		if limit > 0 && int64(len(matched)) >= limit {
			break
		}
		if p.InStock && p.Featured {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *MemoryProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *MemoryProductStore) FindRefs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	refs := make(map[primitive.ObjectID]models.ProductRef, len(ids))
	for _, p := range s.products {
		if _, ok := wanted[p.ID]; ok {
			refs[p.ID] = p.Ref()
		}
	}
	return refs, nil
}

func paginate(products []models.Product, page Page) []models.Product {
	if page.IsZero() {
		return products
	}
	if page.Skip < 0 || page.Skip >= int64(len(products)) {
		return []models.Product{}
	}
	end := int64(len(products))
	if page.Limit > 0 && page.Skip+page.Limit < end {
		end = page.Skip + page.Limit
	}
	return products[page.Skip:end]
}

type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]models.User)}
}

func (s *MemoryUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.byEmail[user.Email] = *user
	return nil
}

func (s *MemoryUserStore) FindActiveByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[email]
	if !ok || !user.IsActive {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]models.Order)}
}

func (s *MemoryOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.OrderID]; ok {
		return ErrDuplicate
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders[order.OrderID] = stored
	return nil
}

func (s *MemoryOrderStore) FindByOrderID(_ context.Context, orderID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	order.Items = append([]models.OrderItem(nil), order.Items...)
	return order, nil
}

type MemoryContactStore struct {
	mu       sync.RWMutex
	messages []models.ContactMessage
}

func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{}
}

func (s *MemoryContactStore) Create(_ context.Context, msg *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

// Messages returns a copy of every stored contact message.
func (s *MemoryContactStore) Messages() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.ContactMessage(nil), s.messages...)
}

// NoopPinger always reports the store as reachable.
type NoopPinger struct{}

func (NoopPinger) Ping(context.Context) error { return nil }
