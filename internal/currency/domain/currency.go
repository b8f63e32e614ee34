package domain

import (
	"errors"
	"strings"
	"time"
)

const BaseCurrency = "INR"

// SourceFallback marks a table built from the hardcoded constants.
const SourceFallback = "fallback"

var ErrUnknownCurrency = errors.New("unknown currency code")

type CurrencyRate struct {
	Code         string  `json:"code"`
	Rate         float64 `json:"rate"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	RealTimeRate float64 `json:"real_time_rate"`
}

// CurrencyInfo is the static part of a supported currency.
type CurrencyInfo struct {
	Code         string
	Symbol       string
	Name         string
	FallbackRate float64
}

// SupportedCurrencies in display order. Fallback rates are units per 1 INR.
var SupportedCurrencies = []CurrencyInfo{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", FallbackRate: 1},
	{Code: "USD", Symbol: "$", Name: "US Dollar", FallbackRate: 0.012},
	{Code: "EUR", Symbol: "€", Name: "Euro", FallbackRate: 0.011},
	{Code: "GBP", Symbol: "£", Name: "British Pound", FallbackRate: 0.0095},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", FallbackRate: 1.78},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", FallbackRate: 0.018},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", FallbackRate: 0.016},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", FallbackRate: 0.011},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", FallbackRate: 0.087},
	{Code: "AED", Symbol: "AED", Name: "UAE Dirham", FallbackRate: 0.044},
	{Code: "SAR", Symbol: "SAR", Name: "Saudi Riyal", FallbackRate: 0.045},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", FallbackRate: 0.016},
}

// RateTable is replaced wholesale on every refresh, never merged.
type RateTable struct {
	Base      string                  `json:"base"`
	Rates     map[string]CurrencyRate `json:"rates"`
	Source    string                  `json:"source"`
	FetchedAt time.Time               `json:"fetched_at"`
}

// Get looks a code up case-insensitively.
func (t RateTable) Get(code string) (CurrencyRate, bool) {
	r, ok := t.Rates[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// Ordered returns the rates in SupportedCurrencies order.
func (t RateTable) Ordered() []CurrencyRate {
	out := make([]CurrencyRate, 0, len(t.Rates))
	for _, info := range SupportedCurrencies {
		if r, ok := t.Rates[info.Code]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Convert moves an amount between two codes through the base currency.
func (t RateTable) Convert(amount float64, from, to string) (float64, error) {
	src, ok := t.Get(from)
	if !ok || src.RealTimeRate <= 0 {
		return 0, ErrUnknownCurrency
	}
	dst, ok := t.Get(to)
	if !ok {
		return 0, ErrUnknownCurrency
	}
	return amount / src.RealTimeRate * dst.RealTimeRate, nil
}

// BuildRateTable takes fetched rates (keyed by upper-case code) and fills every
// supported currency, using the fallback constant for codes that are missing or
// not positive. The base currency is always 1.
func BuildRateTable(fetched map[string]float64, source string, at time.Time) RateTable {
	rates := make(map[string]CurrencyRate, len(SupportedCurrencies))
	for _, info := range SupportedCurrencies {
		rate := info.FallbackRate
		if info.Code == BaseCurrency {
			rate = 1
		} else if v, ok := fetched[info.Code]; ok && v > 0 {
			rate = v
		}
		rates[info.Code] = CurrencyRate{
			Code:         info.Code,
			Rate:         rate,
			Symbol:       info.Symbol,
			Name:         info.Name,
			RealTimeRate: rate,
		}
	}
	return RateTable{Base: BaseCurrency, Rates: rates, Source: source, FetchedAt: at}
}

// FallbackRateTable is the table used when no provider answers.
func FallbackRateTable(at time.Time) RateTable {
	return BuildRateTable(nil, SourceFallback, at)
}

// BaseRate is the identity rate of the base currency.
func BaseRate() CurrencyRate {
	info := SupportedCurrencies[0]
	return CurrencyRate{Code: info.Code, Rate: 1, Symbol: info.Symbol, Name: info.Name, RealTimeRate: 1}
}

type FetchState string

const (
	StateIdle     FetchState = "idle"
	StateFetching FetchState = "fetching"
	StateSuccess  FetchState = "success"
	StateFailure  FetchState = "failure"
)

// RatesSnapshot is the immutable view handed to readers; a new one is built on
// every transition.
type RatesSnapshot struct {
	State       FetchState `json:"state"`
	Table       RateTable  `json:"table"`
	Warning     string     `json:"warning,omitempty"`
	LastUpdated time.Time  `json:"last_updated"`
}

type ConversionResult struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
	Source    string  `json:"source"`
}
