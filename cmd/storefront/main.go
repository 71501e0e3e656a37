package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/heladeria-app/storefront/internal/auth"
	"github.com/heladeria-app/storefront/internal/cart"
	"github.com/heladeria-app/storefront/internal/catalog"
	"github.com/heladeria-app/storefront/internal/config"
	"github.com/heladeria-app/storefront/internal/httpx"
	"github.com/heladeria-app/storefront/internal/order"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	entry := logrus.NewEntry(log)

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.PostgresDSN != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.WithError(err).Fatal("postgres connect failed")
		}
		defer pool.Close()
	}

	// order store: postgres when configured, memory otherwise
	var orderStore order.Store
	if pool != nil {
		orderStore = order.NewPGStore(pool)
	} else {
		orderStore = order.NewMemoryStore()
	}

	var userStore auth.UserStore
	if pool != nil {
		userStore = auth.NewPGUserStore(pool)
	} else {
		userStore = auth.NewMemoryUserStore()
	}

	var credStore auth.CredentialStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		credStore = auth.NewRedisCredentialStore(rdb)
	} else {
		credStore = auth.NewMemoryCredentialStore()
	}

	var source catalog.Source
	switch cfg.CatalogMode {
	case "http":
		source = catalog.NewHTTPSource(cfg.CatalogBaseURL)
	case "postgres":
		if pool == nil {
			log.Fatal("CATALOG_MODE=postgres requires POSTGRES_DSN")
		}
		source = catalog.NewPGSource(pool)
	default:
		source = catalog.NewSeededSource()
	}

	catalogSvc := catalog.NewService(source, entry.WithField("component", "catalog"))
	session := auth.NewSession(ctx, userStore, credStore, entry.WithField("component", "auth"))
	sessionCart := cart.New()
	feed := order.NewFeed(orderStore)
	controller := order.NewController(orderStore, feed, entry.WithField("component", "orders"))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(entry.WithField("component", "http")))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET("/products", listProductsHandler(catalogSvc))
	r.POST("/catalog/refresh", refreshCatalogHandler(catalogSvc))

	r.POST("/auth/register", registerHandler(session))
	r.POST("/auth/login", loginHandler(session))
	r.POST("/auth/logout", logoutHandler(session))
	r.GET("/auth/me", meHandler(session))

	r.GET("/cart", getCartHandler(sessionCart))
	r.POST("/cart/items", addCartItemHandler(sessionCart, catalogSvc))
	r.PUT("/cart/items/:id", setCartQuantityHandler(sessionCart))
	r.DELETE("/cart/items/:id", removeCartItemHandler(sessionCart))

	r.POST("/orders", placeOrderHandler(controller, sessionCart, session))
	r.GET("/orders", listOrdersHandler(controller))
	r.GET("/orders/:id", getOrderHandler(controller))
	r.GET("/orders/watch", watchOrdersHandler(controller))

	log.WithField("addr", cfg.ListenAddr).Info("storefront listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
