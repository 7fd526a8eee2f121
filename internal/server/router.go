package server

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/session"
)

type Deps struct {
	Products  handlers.ProductReader
	Users     handlers.UserStore
	Orders    handlers.OrderStore
	Contacts  handlers.ContactWriter
	Pinger    repository.Pinger
	Sessions  *session.Manager
	StaticDir string
}

// NewRouter registers the REST API and the static page fallback.
func NewRouter(d Deps, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares...)
	r.Use(middleware.CORS())
	r.Use(middleware.LoadSession(d.Sessions))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health(d.Pinger))

		api.GET("/products", handlers.GetProducts(d.Products))
		api.GET("/products/featured", handlers.GetFeaturedProducts(d.Products))
		api.GET("/products/:id", handlers.GetProduct(d.Products))

		api.POST("/auth/register", handlers.Register(d.Users, d.Sessions))
		api.POST("/auth/login", handlers.Login(d.Users, d.Sessions))
		api.POST("/auth/logout", handlers.Logout(d.Sessions))
		api.GET("/auth/me", middleware.RequireUser("Not authenticated"), handlers.GetMe())

		api.POST("/contact", handlers.SubmitContact(d.Contacts))

		api.POST("/orders", middleware.RequireUser("Please login to place an order"), handlers.CreateOrder(d.Orders))
		api.GET("/orders/:orderId", handlers.GetOrder(d.Orders, d.Products))
	}

	r.Static("/public", filepath.Join(d.StaticDir, "public"))
	r.GET("/", handlers.Home(d.StaticDir))
	r.NoRoute(handlers.Pages(d.StaticDir))

	return r
}
