package main

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/config"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/server"
)

func newSingleHostReverseProxy(targetHost string) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(targetHost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target URL '%s': %w", targetHost, err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("target URL '%s' needs scheme and host", targetHost)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		logger.Error(fmt.Sprintf("Gateway: proxy error for %s %s to %s", req.Method, req.URL.Path, targetURL), err)
		http.Error(rw, "Service unavailable or proxy error", http.StatusBadGateway)
	}
	return proxy, nil
}

// serviceMappings: path prefix -> target service. Each prefix is registered with
// and without the trailing slash so POST /api/v1/carts is not redirected.
func serviceMappings(cfg config.GatewayConfig) map[string]string {
	return map[string]string{
		"/api/v1/products":       cfg.CatalogServiceURL,
		"/api/v1/facets":         cfg.CatalogServiceURL,
		"/api/v1/rates":          cfg.CurrencyServiceURL,
		"/api/v1/carts":          cfg.CartServiceURL,
		"/api/v1/markup-presets": cfg.CartServiceURL,
	}
}

func newGatewayMux(cfg config.GatewayConfig) (*http.ServeMux, error) {
	mux := http.NewServeMux()
	for pathPrefix, targetHost := range serviceMappings(cfg) {
		proxy, err := newSingleHostReverseProxy(targetHost)
		if err != nil {
			return nil, fmt.Errorf("reverse proxy for prefix %s: %w", pathPrefix, err)
		}
		// Service mengharapkan path lengkap, jadi prefix tidak di-strip.
		mux.Handle(pathPrefix, proxy)
		mux.Handle(pathPrefix+"/", proxy)
		logger.Info("Routing %s to %s", pathPrefix, targetHost)
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux, nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}
	logger.Init(config.GetEnv("LOG_MODE", "development"))
	cfg := config.LoadGatewayConfig()
	logger.Info("Starting API Gateway on port " + cfg.ListenPort)

	mux, err := newGatewayMux(cfg)
	if err != nil {
		logger.Error("Failed to configure API Gateway", err)
		os.Exit(1)
	}

	os.Exit(server.Run("API Gateway", ":"+cfg.ListenPort, mux, config.ShutdownTimeout(), nil))
}
