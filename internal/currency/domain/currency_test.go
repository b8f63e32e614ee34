package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackRateTable(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := FallbackRateTable(at)

	assert.Equal(t, BaseCurrency, table.Base)
	assert.Equal(t, SourceFallback, table.Source)
	require.Len(t, table.Rates, len(SupportedCurrencies))

	want := map[string]float64{
		"INR": 1, "USD": 0.012, "EUR": 0.011, "GBP": 0.0095, "JPY": 1.78, "AUD": 0.018,
		"CAD": 0.016, "CHF": 0.011, "CNY": 0.087, "AED": 0.044, "SAR": 0.045, "SGD": 0.016,
	}
	for code, rate := range want {
		r, ok := table.Get(code)
		require.True(t, ok, code)
		assert.Equal(t, rate, r.Rate, code)
		assert.Equal(t, rate, r.RealTimeRate, code)
	}
}

func TestBuildRateTable_FillsMissingAndInvalid(t *testing.T) {
	table := BuildRateTable(map[string]float64{"USD": 0.0119, "EUR": -1, "INR": 5}, "test", time.Now())

	usd, _ := table.Get("usd")
	eur, _ := table.Get("EUR")
	gbp, _ := table.Get("GBP")
	inr, _ := table.Get("INR")

	assert.Equal(t, 0.0119, usd.RealTimeRate)
	assert.Equal(t, 0.011, eur.RealTimeRate)
	assert.Equal(t, 0.0095, gbp.RealTimeRate)
	assert.Equal(t, 1.0, inr.RealTimeRate)
	assert.Equal(t, "$", usd.Symbol)
}

func TestRateTable_OrderedAndConvert(t *testing.T) {
	table := FallbackRateTable(time.Now())

	ordered := table.Ordered()
	require.Len(t, ordered, 12)
	assert.Equal(t, "INR", ordered[0].Code)
	assert.Equal(t, "SGD", ordered[11].Code)

	v, err := table.Convert(1000, "INR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 12.0, v, 1e-9)

	v, err = table.Convert(12, "USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 11.0, v, 1e-9)

	_, err = table.Convert(1, "XXX", "USD")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}
