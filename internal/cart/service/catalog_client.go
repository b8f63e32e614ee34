package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	catalogDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
)

var (
	ErrProductNotFound    = errors.New("product not found in catalog")
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type CatalogClient interface {
	GetProduct(ctx context.Context, productID string) (*catalogDomain.Product, error)
}

type httpCatalogClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPCatalogClient(baseURL string) CatalogClient {
	return &httpCatalogClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *httpCatalogClient) GetProduct(ctx context.Context, productID string) (*catalogDomain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v1/products/%s", c.BaseURL, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logger.Error("CatalogClient.GetProduct: NewRequest failed", err)
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Error("CatalogClient.GetProduct: HTTPClient.Do failed", err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	default:
		logger.Warn("CatalogClient.GetProduct: catalog returned status %d for %s", resp.StatusCode, productID)
		return nil, fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var p catalogDomain.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		logger.Error("CatalogClient.GetProduct: decode failed", err)
		return nil, fmt.Errorf("%w: invalid product payload: %v", ErrCatalogUnavailable, err)
	}
	return &p, nil
}
