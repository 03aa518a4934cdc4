package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"parcel/internal/handler"
	"parcel/internal/middleware"
	internalRedis "parcel/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RootHandler   *handler.RootHandler
	ParcelHandler *handler.ParcelHandler
	UserHandler   *handler.UserHandler
	RiderHandler  *handler.RiderHandler

	// IdempotencyStore is optional; nil disables Idempotency-Key replay.
	IdempotencyStore internalRedis.IdempotencyStoreInterface
	NewRelicApp      *newrelic.Application
	Logger           zerolog.Logger
	CORSOrigin       string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORSMiddleware(deps.CORSOrigin))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.IdempotencyStore, deps.Logger))

	router.GET("/", deps.RootHandler.Root)
	router.GET("/health", deps.RootHandler.Health)

	parcels := router.Group("/parcels")
	{
		parcels.GET("", deps.ParcelHandler.List)
		parcels.POST("", deps.ParcelHandler.Create)
	}

	users := router.Group("/users")
	{
		users.POST("", deps.UserHandler.Register)
		users.GET("/:email", deps.UserHandler.GetByEmail)
	}

	riders := router.Group("/riders")
	{
		riders.POST("", deps.RiderHandler.Create)
	}

	return router
}
