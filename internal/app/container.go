package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hotelops/guest-services-backend/internal/api"
	"github.com/hotelops/guest-services-backend/internal/auth"
	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/catalog"
	"github.com/hotelops/guest-services-backend/internal/config"
	"github.com/hotelops/guest-services-backend/internal/metrics"
	"github.com/hotelops/guest-services-backend/internal/purchase"
)

// Dependencies holds the externally-created resources the container wires
// together. DBPool and Redis may be nil depending on configuration.
type Dependencies struct {
	Config *config.Config
	Logger zerolog.Logger
	DBPool *pgxpool.Pool
	Redis  *redis.Client
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	Resolver   availability.Service
	Catalog    catalog.Repository
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
//
// Source selection: with a backend base URL the collaborators are reached
// over REST; otherwise the pgx sources read the operations database replica
// directly. The optional Redis cache decorates the availability source in
// either mode.
func NewContainer(deps Dependencies) *Container {
	cfg := deps.Config

	metrics.Register()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	var (
		source     availability.Source
		contracted availability.ContractedSource
		cat        catalog.Repository
		contractor purchase.Contractor
	)

	if cfg.BackendBaseURL != "" {
		client := availability.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey)
		source = client
		contracted = client
		cat = catalog.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey)
	} else {
		source = availability.NewPgxSource(deps.DBPool)
		contracted = availability.NewPgxContractedSource(deps.DBPool)
		cat = catalog.NewPgxRepository(deps.DBPool)
	}

	// Purchases always go through the contracting API: the authoritative
	// capacity check lives there, never in this service.
	contractor = purchase.NewContractorClient(cfg.ContractingBaseURL, cfg.BackendAPIKey)

	if deps.Redis != nil && cfg.CacheTTL > 0 {
		source = availability.NewCachedSource(source, deps.Redis, cfg.CacheTTL)
	}

	resolver := availability.NewService(source, contracted, cfg.DefaultWindowDays, deps.Logger)
	purchaseService := purchase.NewService(resolver, cat, contractor, deps.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		Logger:          deps.Logger,
		Resolver:        resolver,
		Catalog:         cat,
		PurchaseService: purchaseService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:     router,
		Resolver:   resolver,
		Catalog:    cat,
		JWTManager: jwtManager,
	}
}
