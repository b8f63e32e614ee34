package main

import (
	"os"

	"github.com/gin-gonic/gin"
	catalogAPI "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/api"
	catalogDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	catalogRepo "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/repository"
	catalogService "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/service"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/config"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/server"
)

func main() {
	// Load Config
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}
	logger.Init(config.GetEnv("LOG_MODE", "development"))
	serverCfg := config.LoadServerConfig("8082")
	catalogCfg := config.LoadCatalogConfig()

	logger.Info("Starting Catalog Service...")

	policy, err := catalogDomain.ParseWhitespacePolicy(catalogCfg.WhitespacePolicy)
	if err != nil {
		logger.Warn("Catalog: %v, using %s", err, catalogDomain.CollapseWhitespace)
	}
	normalizer := catalogDomain.NewNormalizer(policy)

	products, err := catalogRepo.LoadCatalog(catalogCfg.CatalogFile, normalizer)
	if err != nil {
		logger.Error("Failed to load product catalog", err)
		os.Exit(1)
	}
	logger.Info("Catalog loaded: %d products (whitespace policy %s)", len(products), normalizer.Policy)

	// Setup Dependencies
	productRepository := catalogRepo.NewMemoryProductRepository(products)
	svc := catalogService.NewCatalogService(productRepository, normalizer, catalogCfg.PageSize)
	handler := catalogAPI.NewCatalogHandler(svc)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	handler.RegisterRoutes(apiV1)

	os.Exit(server.Run("Catalog Service", serverCfg.Port, router, config.ShutdownTimeout(), nil))
}
