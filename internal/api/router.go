package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hotelops/guest-services-backend/internal/auth"
	"github.com/hotelops/guest-services-backend/internal/availability"
	availabilityHttp "github.com/hotelops/guest-services-backend/internal/availability/http"
	"github.com/hotelops/guest-services-backend/internal/catalog"
	catalogHttp "github.com/hotelops/guest-services-backend/internal/catalog/http"
	"github.com/hotelops/guest-services-backend/internal/purchase"
	purchaseHttp "github.com/hotelops/guest-services-backend/internal/purchase/http"
	selectionHttp "github.com/hotelops/guest-services-backend/internal/selection/http"
)

// Config holds the dependencies the router needs.
type Config struct {
	IsProduction    bool
	ProdOrigins     []string
	Logger          zerolog.Logger
	Resolver        availability.Service
	Catalog         catalog.Repository
	PurchaseService purchase.Service
	JWTManager      *auth.JWTManager
}

// NewRouter assembles middleware (logging, recovery, CORS, auth) and
// registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.GuestRequired(cfg.JWTManager)

	availabilityHandler := availabilityHttp.NewHandler(cfg.Resolver, cfg.Catalog)
	selectionHandler := selectionHttp.NewHandler(cfg.Resolver)
	purchaseHandler := purchaseHttp.NewHandler(cfg.PurchaseService)
	catalogHandler := catalogHttp.NewHandler(cfg.Catalog)

	v1 := r.Group("/v1")
	{
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		selectionHttp.RegisterRoutes(v1, selectionHandler, authMiddleware)
		purchaseHttp.RegisterRoutes(v1, purchaseHandler, authMiddleware)
	}

	return r
}
