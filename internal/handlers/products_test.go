package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

func TestGetProductsOnlyInStock(t *testing.T) {
	env := newTestEnv(t, repository.DemoProducts()...)

	rec := env.do(t, http.MethodGet, "/api/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []models.Product
	decodeBody(t, rec, &list)
	if len(list) != 5 {
		t.Fatalf("expected 5 in-stock products, got %d", len(list))
	}
	for _, p := range list {
		if !p.InStock {
			t.Fatalf("out of stock product listed: %s", p.Name)
		}
	}
}

func TestGetProductsEmptyCatalogReturnsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestGetProductsPagination(t *testing.T) {
	env := newTestEnv(t, repository.DemoProducts()...)

	rec := env.do(t, http.MethodGet, "/api/products?page=2&limit=2", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []models.Product
	decodeBody(t, rec, &list)
	if len(list) != 2 || list[0].Name != "White Lily Vase" {
		t.Fatalf("unexpected page: %+v", list)
	}

	// Only one of the two parameters means no pagination.
	rec = env.do(t, http.MethodGet, "/api/products?page=2", nil, nil)
	decodeBody(t, rec, &list)
	if len(list) != 5 {
		t.Fatalf("expected full list, got %d", len(list))
	}

	rec = env.do(t, http.MethodGet, "/api/products?page=0&limit=2", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid page, got %d", rec.Code)
	}
}

func TestGetFeaturedProductsCapped(t *testing.T) {
	var seed []models.Product
	for i := 0; i < 9; i++ {
		seed = append(seed, models.Product{Name: "Bouquet", Price: 10, InStock: true, Featured: true})
	}
	seed = append(seed, models.Product{Name: "Hidden", Price: 10, InStock: false, Featured: true})
	env := newTestEnv(t, seed...)

	rec := env.do(t, http.MethodGet, "/api/products/featured", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []models.Product
	decodeBody(t, rec, &list)
	if len(list) != models.FeaturedLimit {
		t.Fatalf("expected %d featured products, got %d", models.FeaturedLimit, len(list))
	}
	for _, p := range list {
		if !p.Featured || !p.InStock {
			t.Fatalf("unexpected product in featured list: %+v", p)
		}
	}
}

func TestGetProductByID(t *testing.T) {
	id := primitive.NewObjectID()
	env := newTestEnv(t, models.Product{ID: id, Name: "Red Rose Bouquet", Price: 39.99, InStock: true})

	rec := env.do(t, http.MethodGet, "/api/products/"+id.Hex(), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var product models.Product
	decodeBody(t, rec, &product)
	if product.ID != id || product.Name != "Red Rose Bouquet" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/products/" + primitive.NewObjectID().Hex(),
		"/api/products/not-an-id",
	} {
		rec := env.do(t, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestProductHandlersStorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(failingStore{}))
	r.GET("/featured", GetFeaturedProducts(failingStore{}))
	r.GET("/products/:id", GetProduct(failingStore{}))

	for _, path := range []string{"/products", "/featured", "/products/" + primitive.NewObjectID().Hex()} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, rec.Code)
		}
	}
}

func TestPageFromQuery(t *testing.T) {
	page, err := pageFromQuery("3", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Skip != 20 || page.Limit != 10 {
		t.Fatalf("unexpected page %+v", page)
	}

	page, err = pageFromQuery("", "10")
	if err != nil || !page.IsZero() {
		t.Fatalf("expected zero page, got %+v (%v)", page, err)
	}

	if _, err := pageFromQuery("1", "abc"); err != errInvalidPagination {
		t.Fatalf("expected errInvalidPagination, got %v", err)
	}

	for _, q := range [][2]string{
		{"9223372036854775807", "2"},
		{"4611686018427387905", "4"},
		{"2", "9223372036854775807"},
	} {
		if _, err := pageFromQuery(q[0], q[1]); err != errInvalidPagination {
			t.Fatalf("page=%s limit=%s: expected errInvalidPagination, got %v", q[0], q[1], err)
		}
	}

	page, err = pageFromQuery("1", "9223372036854775807")
	if err != nil || page.Skip != 0 {
		t.Fatalf("expected first page with huge limit, got %+v (%v)", page, err)
	}
}

func TestGetProductsPaginationOverflow(t *testing.T) {
	env := newTestEnv(t, repository.DemoProducts()...)

	for _, path := range []string{
		"/api/products?page=9223372036854775807&limit=2",
		"/api/products?page=4611686018427387905&limit=4",
	} {
		rec := env.do(t, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", path, rec.Code, rec.Body.String())
		}
	}
}
