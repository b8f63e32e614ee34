package main

import (
	"context"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	currencyAPI "github.com/ridloal/pharma-catalog-go-microservices/internal/currency/api"
	currencyService "github.com/ridloal/pharma-catalog-go-microservices/internal/currency/service"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/config"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}
	logger.Init(config.GetEnv("LOG_MODE", "development"))
	serverCfg := config.LoadServerConfig("8083")
	currencyCfg := config.LoadCurrencyConfig()

	logger.Info("Starting Currency Service...")

	providers := currencyService.NewHTTPRateProviders(currencyCfg.ProviderURLs, currencyCfg.RequestTimeout)
	for i, p := range providers {
		logger.Info("Rate provider #%d: %s", i+1, p.Name())
	}
	rateService := currencyService.NewRateService(providers, currencyCfg.BaseCurrency, currencyCfg.PollInterval)

	// Poller berhenti lewat Stop saat shutdown, bukan lewat ctx ini.
	if err := rateService.Start(context.Background()); err != nil {
		logger.Error("Failed to start currency rate poller", err)
		os.Exit(1)
	}

	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	currencyAPI.NewCurrencyHandler(rateService).RegisterRoutes(apiV1)

	os.Exit(server.Run("Currency Service", serverCfg.Port, router, config.ShutdownTimeout(), map[string]gfshutdown.Operation{
		"rate-poller": func(ctx context.Context) error {
			rateService.Stop()
			return nil
		},
	}))
}
