package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Stepheeeen/impressa/configs"
	"github.com/Stepheeeen/impressa/internal/adapter/backend"
	"github.com/Stepheeeen/impressa/internal/adapter/cache"
	httpadapter "github.com/Stepheeeen/impressa/internal/adapter/http"
	"github.com/Stepheeeen/impressa/internal/adapter/http/middleware"
	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/logging"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	// init logger
	logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	logging.Base().Info("storefront: starting up", "backend", cfg.Backend.BaseURL)

	// backend gateway
	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout, cfg.Backend.UserAgent)

	// redis-backed state
	sessions := cache.NewRedisSessionStore(rdb, cfg.Session.TTL)
	payStates := cache.NewRedisPaymentStateStore(rdb, cfg.Checkout.StateTTL)
	catalogCache := cache.NewRedisCatalogCache(rdb, cfg.Catalog.CacheTTL)

	pricing := domain.Pricing{
		ShippingStandardFee: cfg.Checkout.ShippingStandard,
		ShippingExpressFee:  cfg.Checkout.ShippingExpress,
		GiftWrapFee:         cfg.Checkout.GiftWrapFee,
	}

	// usecases
	auth := usecase.NewAuthenticator(api, sessions, sessions)
	catalog := usecase.NewCatalog(api, catalogCache)
	cart := usecase.NewCartService(api, sessions, pricing)
	checkout := usecase.NewCheckout(
		api, api, sessions, payStates,
		httpadapter.RedirectOpener{}, usecase.SystemClock, pricing,
		cfg.Checkout.PollInterval, cfg.Checkout.PollCeiling,
	)
	checkout.OutcomeHook = middleware.CountCheckoutOutcome
	orders := usecase.NewOrders(api, sessions)

	// handlers + router + middleware
	sm := middleware.NewSessions(cfg.Session.CookieName, cfg.Session.TTL, sessions)
	router := httpadapter.NewRouter(httpadapter.Handlers{
		Auth:     httpadapter.NewAuthHandler(auth),
		Catalog:  httpadapter.NewCatalogHandler(catalog),
		Cart:     httpadapter.NewCartHandler(cart),
		Checkout: httpadapter.NewCheckoutHandler(checkout),
		Orders:   httpadapter.NewOrdersHandler(orders, sessions),
	}, sm, cfg.HTTP.AllowedOrigins)

	// auth-change fan-out: other instances learn about logins/logouts here
	events, stopEvents, err := sessions.SubscribeAuthChanges(context.Background())
	if err != nil {
		return nil, nil, err
	}
	go func() {
		l := logging.New("auth-events")
		for id := range events {
			l.Debug("session auth changed", "session_id", id)
		}
	}()

	cleanup := func() {
		stopEvents()
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}
