package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Stepheeeen/impressa/internal/adapter/http/middleware"
	"github.com/Stepheeeen/impressa/internal/logging"
)

type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
}

func NewRouter(h Handlers, sessions *middleware.Sessions, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(sessions.Ensure())

	// public pages
	r.POST("/session/login", h.Auth.Login)
	r.POST("/session/register", h.Auth.Register)
	r.POST("/session/logout", h.Auth.Logout)
	r.GET("/views/products", h.Catalog.Browse)
	r.GET("/views/products/:id", h.Catalog.Detail)

	// signed-in pages
	auth := r.Group("/", sessions.RequireAuth())
	{
		auth.GET("/views/cart", h.Cart.View)
		auth.POST("/cart/items", h.Cart.Add)
		auth.POST("/cart/items/:id/quantity", h.Cart.SetQuantity)
		auth.DELETE("/cart/items/:id", h.Cart.Remove)
		auth.DELETE("/cart", h.Cart.Clear)

		auth.POST("/checkout", h.Checkout.Start)
		auth.GET("/checkout/:reference", h.Checkout.Status)

		auth.GET("/views/orders", h.Orders.History)
		auth.GET("/views/account", h.Orders.Account)
		auth.PUT("/account/address", h.Orders.UpdateAddress)
	}

	return r
}
