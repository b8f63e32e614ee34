package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	currencyDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"golang.org/x/sync/singleflight"
)

const CurrencyUnavailableWarning = "Currency service unavailable, showing fallback rates"

var ErrCurrencyUnavailable = errors.New("currency service unavailable")

// RatesResult is what the currency service reports on GET /rates.
type RatesResult struct {
	Table   currencyDomain.RateTable
	Warning string
}

type CurrencyClient interface {
	GetRates(ctx context.Context) (*RatesResult, error)
}

type httpCurrencyClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPCurrencyClient(baseURL string) CurrencyClient {
	return &httpCurrencyClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type ratesPayload struct {
	Base        string                        `json:"base"`
	Source      string                        `json:"source"`
	Warning     string                        `json:"warning"`
	LastUpdated time.Time                     `json:"last_updated"`
	Rates       []currencyDomain.CurrencyRate `json:"rates"`
}

func (c *httpCurrencyClient) GetRates(ctx context.Context) (*RatesResult, error) {
	reqURL := fmt.Sprintf("%s/api/v1/rates", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCurrencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrCurrencyUnavailable, resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid rates payload: %v", ErrCurrencyUnavailable, err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table", ErrCurrencyUnavailable)
	}

	fetched := make(map[string]float64, len(payload.Rates))
	for _, r := range payload.Rates {
		fetched[r.Code] = r.RealTimeRate
	}
	return &RatesResult{
		Table:   currencyDomain.BuildRateTable(fetched, payload.Source, payload.LastUpdated),
		Warning: payload.Warning,
	}, nil
}

// RateSource always yields a usable table; warning is non-empty when the table is
// not live.
type RateSource interface {
	CurrentRates(ctx context.Context) (currencyDomain.RateTable, string)
}

type cachedRateSource struct {
	client CurrencyClient
	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group

	mu        sync.Mutex
	cached    *RatesResult
	expiresAt time.Time
}

// NewCachedRateSource keeps a successful answer for ttl. Concurrent misses share one
// request. Failures are not cached.
func NewCachedRateSource(client CurrencyClient, ttl time.Duration) RateSource {
	return &cachedRateSource{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *cachedRateSource) CurrentRates(ctx context.Context) (currencyDomain.RateTable, string) {
	s.mu.Lock()
	if s.cached != nil && s.now().Before(s.expiresAt) {
		res := *s.cached
		s.mu.Unlock()
		return res.Table, res.Warning
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("rates", func() (interface{}, error) {
		s.mu.Lock()
		if s.cached != nil && s.now().Before(s.expiresAt) {
			res := s.cached
			s.mu.Unlock()
			return res, nil
		}
		s.mu.Unlock()

		res, err := s.client.GetRates(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = res
		s.expiresAt = s.now().Add(s.ttl)
		s.mu.Unlock()
		return res, nil
	})
	if err != nil {
		logger.Error("RateSource: using fallback rates", err)
		return currencyDomain.FallbackRateTable(s.now()), CurrencyUnavailableWarning
	}
	res := v.(*RatesResult)
	return res.Table, res.Warning
}
