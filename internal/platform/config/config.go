package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type ServerConfig struct {
	Port string
}

// LoadDotEnv membaca file .env jika ada. File yang tidak ada bukan error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := defaultPort
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

// Helper untuk mendapatkan Environment Variable jika ada, atau default
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	value, err := cast.ToIntE(strings.TrimSpace(GetEnv(key, "")))
	if err != nil || GetEnv(key, "") == "" {
		return fallback
	}
	return value
}

// GetEnvAsDuration accepts Go durations ("90s", "2m") or a bare number of seconds.
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(GetEnv(key, ""))
	if raw == "" {
		return fallback
	}
	if secs, err := cast.ToInt64E(raw); err == nil {
		if secs <= 0 {
			return fallback
		}
		return time.Duration(secs) * time.Second
	}
	d, err := cast.ToDurationE(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetEnvAsList splits a comma separated variable, dropping blank entries.
func GetEnvAsList(key string, fallback []string) []string {
	raw := GetEnv(key, "")
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

type GatewayConfig struct {
	ListenPort         string
	CatalogServiceURL  string
	CurrencyServiceURL string
	CartServiceURL     string
}

func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		ListenPort:         GetEnv("API_GATEWAY_PORT", "8080"),
		CatalogServiceURL:  GetEnv("CATALOG_SERVICE_URL", "http://localhost:8082"),
		CurrencyServiceURL: GetEnv("CURRENCY_SERVICE_URL", "http://localhost:8083"),
		CartServiceURL:     GetEnv("CART_SERVICE_URL", "http://localhost:8084"),
	}
}

type CatalogConfig struct {
	// CatalogFile menggantikan data katalog bawaan jika diisi.
	CatalogFile      string
	WhitespacePolicy string
	PageSize         int
}

func LoadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		CatalogFile:      GetEnv("CATALOG_FILE", ""),
		WhitespacePolicy: GetEnv("CATALOG_WHITESPACE_POLICY", "collapse"),
		PageSize:         GetEnvAsInt("CATALOG_PAGE_SIZE", 50),
	}
}

type CurrencyConfig struct {
	BaseCurrency   string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	// ProviderURLs overrides the default provider chain, tried in order.
	ProviderURLs []string
}

func LoadCurrencyConfig() CurrencyConfig {
	return CurrencyConfig{
		BaseCurrency:   strings.ToUpper(GetEnv("BASE_CURRENCY", "INR")),
		PollInterval:   GetEnvAsDuration("CURRENCY_POLL_INTERVAL", 2*time.Minute),
		RequestTimeout: GetEnvAsDuration("CURRENCY_REQUEST_TIMEOUT", 5*time.Second),
		ProviderURLs:   GetEnvAsList("CURRENCY_PROVIDER_URLS", nil),
	}
}

type CartConfig struct {
	CatalogServiceURL  string
	CurrencyServiceURL string
	RatesCacheTTL      time.Duration
}

func LoadCartConfig() CartConfig {
	return CartConfig{
		CatalogServiceURL:  GetEnv("CATALOG_SERVICE_URL", "http://localhost:8082"),
		CurrencyServiceURL: GetEnv("CURRENCY_SERVICE_URL", "http://localhost:8083"),
		RatesCacheTTL:      GetEnvAsDuration("CART_RATES_CACHE_TTL", 30*time.Second),
	}
}

// ShutdownTimeout is shared by every service main.
func ShutdownTimeout() time.Duration {
	return GetEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second)
}
