package main

import (
	"os"

	"github.com/gin-gonic/gin"
	cartAPI "github.com/ridloal/pharma-catalog-go-microservices/internal/cart/api"
	cartRepo "github.com/ridloal/pharma-catalog-go-microservices/internal/cart/repository"
	cartService "github.com/ridloal/pharma-catalog-go-microservices/internal/cart/service"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/config"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}
	logger.Init(config.GetEnv("LOG_MODE", "development"))
	serverCfg := config.LoadServerConfig("8084")
	cartCfg := config.LoadCartConfig()

	logger.Info("Starting Cart Service...")

	// Setup Dependencies
	catalogClient := cartService.NewHTTPCatalogClient(cartCfg.CatalogServiceURL)
	rateSource := cartService.NewCachedRateSource(
		cartService.NewHTTPCurrencyClient(cartCfg.CurrencyServiceURL),
		cartCfg.RatesCacheTTL,
	)
	svc := cartService.NewCartService(cartRepo.NewMemoryCartRepository(), catalogClient, rateSource)

	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	cartAPI.NewCartHandler(svc).RegisterRoutes(apiV1)

	logger.Info("Cart Service connecting to Catalog Service at %s", cartCfg.CatalogServiceURL)
	logger.Info("Cart Service connecting to Currency Service at %s", cartCfg.CurrencyServiceURL)
	os.Exit(server.Run("Cart Service", serverCfg.Port, router, config.ShutdownTimeout(), nil))
}
