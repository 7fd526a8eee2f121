package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/repository"
	"storefront/internal/session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>home</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(static, "public", "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, "public", "js", "main.js"), []byte("// app"), 0o644); err != nil {
		t.Fatal(err)
	}

	return NewRouter(Deps{
		Products:  repository.NewMemoryProductStore(repository.DemoProducts()...),
		Users:     repository.NewMemoryUserStore(),
		Orders:    repository.NewMemoryOrderStore(),
		Contacts:  repository.NewMemoryContactStore(),
		Pinger:    repository.NoopPinger{},
		Sessions:  session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour),
		StaticDir: static,
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/products", http.StatusOK},
		{http.MethodGet, "/api/products/featured", http.StatusOK},
		{http.MethodGet, "/api/auth/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/orders", http.StatusUnauthorized},
		{http.MethodGet, "/api/orders/ORDER_1", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/public/js/main.js", http.StatusOK},
		{http.MethodGet, "/missing-page", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rec.Code)
		}
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if !strings.EqualFold(rec.Header().Get("Access-Control-Allow-Credentials"), "true") {
		t.Fatal("credentials must be allowed")
	}
}
