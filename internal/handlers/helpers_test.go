package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/session"
)

func init() {
	passwordCost = bcrypt.MinCost
}

var errBoom = errors.New("boom")

type testEnv struct {
	router   *gin.Engine
	products *repository.MemoryProductStore
	users    *repository.MemoryUserStore
	orders   *repository.MemoryOrderStore
	contacts *repository.MemoryContactStore
	sessions *session.MemoryStore
}

func newTestEnv(t *testing.T, products ...models.Product) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		products: repository.NewMemoryProductStore(products...),
		users:    repository.NewMemoryUserStore(),
		orders:   repository.NewMemoryOrderStore(),
		contacts: repository.NewMemoryContactStore(),
		sessions: session.NewMemoryStore(),
	}
	manager := session.NewManager(env.sessions, "test-secret", time.Hour)

	r := gin.New()
	r.Use(middleware.LoadSession(manager))
	r.GET("/api/products", GetProducts(env.products))
	r.GET("/api/products/featured", GetFeaturedProducts(env.products))
	r.GET("/api/products/:id", GetProduct(env.products))
	r.POST("/api/auth/register", Register(env.users, manager))
	r.POST("/api/auth/login", Login(env.users, manager))
	r.POST("/api/auth/logout", Logout(manager))
	r.GET("/api/auth/me", GetMe())
	r.POST("/api/contact", SubmitContact(env.contacts))
	r.POST("/api/orders", CreateOrder(env.orders))
	r.GET("/api/orders/:orderId", GetOrder(env.orders, env.products))
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates an account and returns the session cookies.
func (e *testEnv) registerAndLogin(t *testing.T, name, email, password string) []*http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", gin.H{"name": name, "email": email, "password": password}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

type failingStore struct{}

func (failingStore) ListInStock(context.Context, repository.Page) ([]models.Product, error) {
	return nil, errBoom
}

func (failingStore) ListFeatured(context.Context, int64) ([]models.Product, error) {
	return nil, errBoom
}

func (failingStore) FindByID(context.Context, primitive.ObjectID) (models.Product, error) {
	return models.Product{}, errBoom
}

func (failingStore) FindRefs(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	return nil, errBoom
}

func (failingStore) Create(context.Context, *models.Order) error {
	return errBoom
}

func (failingStore) FindByOrderID(context.Context, string) (models.Order, error) {
	return models.Order{}, errBoom
}

func (failingStore) Ping(context.Context) error {
	return errBoom
}
