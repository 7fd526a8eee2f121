package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/session"
)

func newTestRouter(manager *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoadSession(manager))
	r.GET("/private", RequireUser("Not authenticated"), func(c *gin.Context) {
		s, _ := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"user": s.User})
	})
	return r
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), "secret", time.Hour)
	r := newTestRouter(manager)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not authenticated") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRequireUserAcceptsSessionCookie(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), "secret", time.Hour)
	r := newTestRouter(manager)

	login := httptest.NewRecorder()
	if _, err := manager.Start(context.Background(), login, httptest.NewRequest(http.MethodPost, "/", nil), session.Identity{ID: "u1", Name: "Ada"}); err != nil {
		t.Fatalf("start session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"name":"Ada"`) {
		t.Fatalf("expected session identity in body, got %s", rec.Body.String())
	}
}
