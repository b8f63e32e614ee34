package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/spf13/cast"
)

var (
	ErrUnparseablePayload = errors.New("rate payload has no usable rates")
	ErrProviderStatus     = errors.New("rate provider returned non-success status")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RateProvider fetches rates quoted against base, keyed by upper-case code.
type RateProvider interface {
	Name() string
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// DefaultProviderURLs are tried in order. {base} and {base_lower} are substituted.
var DefaultProviderURLs = []string{
	"https://api.exchangerate-api.com/v4/latest/{base}",
	"https://api.frankfurter.app/latest?from={base}",
	"https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies/{base_lower}.json",
	"https://open.er-api.com/v6/latest/{base}",
}

type httpRateProvider struct {
	name        string
	URLTemplate string
	HTTPClient  *http.Client
}

func NewHTTPRateProvider(urlTemplate string, timeout time.Duration) RateProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	name := urlTemplate
	if u, err := url.Parse(urlTemplate); err == nil && u.Host != "" {
		name = u.Host
	}
	return &httpRateProvider{
		name:        name,
		URLTemplate: urlTemplate,
		HTTPClient:  &http.Client{Timeout: timeout},
	}
}

// NewHTTPRateProviders builds the chain from templates, defaults when empty.
func NewHTTPRateProviders(templates []string, timeout time.Duration) []RateProvider {
	if len(templates) == 0 {
		templates = DefaultProviderURLs
	}
	providers := make([]RateProvider, 0, len(templates))
	for _, tpl := range templates {
		providers = append(providers, NewHTTPRateProvider(tpl, timeout))
	}
	return providers
}

func (p *httpRateProvider) Name() string {
	return p.name
}

func (p *httpRateProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	reqURL := strings.NewReplacer(
		"{base}", strings.ToUpper(base),
		"{base_lower}", strings.ToLower(base),
	).Replace(p.URLTemplate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", p.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s returned %d", ErrProviderStatus, p.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", p.name, err)
	}
	rates, err := ParseRatesPayload(body, base)
	if err != nil {
		logger.Warn("RateProvider %s: %v", p.name, err)
		return nil, err
	}
	return rates, nil
}

// ParseRatesPayload accepts the shapes used by the public rate APIs:
//
//	{"rates": {...}}                 exchangerate-api v4, frankfurter, open.er-api
//	{"conversion_rates": {...}}      exchangerate-api v6
//	{"inr": {...}}                   fawazahmed0 currency-api
//
// A "result" field other than "success" rejects the payload. Non-numeric values are
// skipped; codes are upper-cased.
func ParseRatesPayload(body []byte, base string) (map[string]float64, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseablePayload, err)
	}

	if result, ok := payload["result"]; ok && !strings.EqualFold(cast.ToString(result), "success") {
		return nil, fmt.Errorf("%w: result=%v", ErrProviderStatus, result)
	}

	var raw map[string]interface{}
	for _, key := range []string{"rates", "conversion_rates", strings.ToLower(base)} {
		if m, ok := payload[key].(map[string]interface{}); ok {
			raw = m
			break
		}
	}
	if raw == nil {
		return nil, ErrUnparseablePayload
	}

	rates := make(map[string]float64, len(raw))
	for code, v := range raw {
		if _, isBool := v.(bool); isBool {
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err != nil || f <= 0 {
			continue
		}
		rates[strings.ToUpper(code)] = f
	}
	if len(rates) == 0 {
		return nil, ErrUnparseablePayload
	}
	return rates, nil
}
