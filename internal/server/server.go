package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matiasroldan/cuchilleria/internal/auth"
	"github.com/matiasroldan/cuchilleria/internal/catalog"
	"github.com/matiasroldan/cuchilleria/internal/config"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/matiasroldan/cuchilleria/internal/order"
	"github.com/matiasroldan/cuchilleria/internal/store"
)

type Server struct {
	router    *gin.Engine
	db        *database.DB
	tokens    *auth.Manager
	users     *store.UserStore
	catalog   *catalog.Service
	orders    *order.Service
	uploadDir string
}

// NewServer wires the stores and services and registers all routes.
func NewServer(db *database.DB, cfg *config.Config) *Server {
	router := gin.Default()

	products := store.NewProductStore(db)
	server := &Server{
		router:    router,
		db:        db,
		tokens:    auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		users:     store.NewUserStore(db),
		catalog:   catalog.NewService(products),
		orders:    order.NewService(products, store.NewOrderStore(db)),
		uploadDir: cfg.Uploads.Dir,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Static("/uploads", s.uploadDir)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)

		api.POST("/register", s.register)
		api.POST("/login", s.login)

		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
	}

	authed := api.Group("", s.tokens.RequireAuth())
	{
		authed.GET("/user/profile", s.profile)
		authed.PUT("/user/profile", s.updateProfile)

		authed.POST("/orders", s.placeOrder)
		authed.GET("/orders", s.listOrders)
		authed.GET("/orders/:id", s.getOrder)
	}

	admin := authed.Group("", auth.RequireAdmin())
	{
		admin.POST("/products", s.createProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.DELETE("/products/:id", s.deleteProduct)

		admin.PUT("/orders/:id/status", s.updateOrderStatus)

		admin.POST("/uploads", s.uploadImage)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	// Check database health
	if err := s.db.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cuchilleria",
		"version": "0.1.0",
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
