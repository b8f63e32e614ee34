// Package pricing turns cart lines priced in the base currency into totals in a
// display currency. All arithmetic stays in decimal; rounding happens only when a
// value is formatted.
package pricing

import (
	"fmt"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Line is one cart entry priced in the base currency.
type Line struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
}

type LineTotal struct {
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
	UnitPriceDisplay string          `json:"unit_price_display"`
	TotalDisplay     string          `json:"total_display"`
}

type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Markup   string `json:"markup"`
	Total    string `json:"total"`
}

// Totals keeps the unrounded base figures next to the converted ones.
type Totals struct {
	Currency      string          `json:"currency"`
	Symbol        string          `json:"symbol"`
	Rate          decimal.Decimal `json:"rate"`
	RateLabel     string          `json:"rate_label"`
	ItemCount     int             `json:"item_count"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`

	BaseSubtotal decimal.Decimal `json:"base_subtotal"`
	MarkupAmount decimal.Decimal `json:"markup_amount"`
	FinalBase    decimal.Decimal `json:"final_base"`

	Subtotal decimal.Decimal `json:"subtotal"`
	Markup   decimal.Decimal `json:"markup"`
	Total    decimal.Decimal `json:"total"`

	Display DisplayTotals `json:"display"`
	Lines   []LineTotal   `json:"lines"`
	Warning string        `json:"warning,omitempty"`
}

// ResolveRate looks code up in table; an unknown code gets the identity rate and
// the base currency's symbol.
func ResolveRate(table domain.RateTable, code string) domain.CurrencyRate {
	if r, ok := table.Get(code); ok && r.RealTimeRate > 0 {
		return r
	}
	return domain.BaseRate()
}

// Calculate computes subtotal, markup and total in the base currency and converts
// each of them with rate.RealTimeRate. A negative markup counts as zero.
func Calculate(lines []Line, markupPercent float64, rate domain.CurrencyRate) Totals {
	r := decimal.NewFromFloat(rate.RealTimeRate)
	if !r.IsPositive() {
		r = one
	}
	p := decimal.NewFromFloat(markupPercent)
	if p.IsNegative() {
		p = decimal.Zero
	}

	subtotal := decimal.Zero
	count := 0
	lineTotals := make([]LineTotal, 0, len(lines))
	for _, l := range lines {
		unit := decimal.NewFromFloat(l.UnitPrice)
		lineBase := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(lineBase)
		count += l.Quantity

		convUnit := unit.Mul(r)
		convTotal := lineBase.Mul(r)
		lineTotals = append(lineTotals, LineTotal{
			ProductID:        l.ProductID,
			Name:             l.Name,
			Quantity:         l.Quantity,
			UnitPrice:        convUnit,
			Total:            convTotal,
			UnitPriceDisplay: Format(convUnit, rate.Symbol),
			TotalDisplay:     Format(convTotal, rate.Symbol),
		})
	}

	markup := subtotal.Mul(p).Div(hundred)
	final := subtotal.Add(markup)

	t := Totals{
		Currency:      rate.Code,
		Symbol:        rate.Symbol,
		Rate:          r,
		RateLabel:     RateLabel(rate),
		ItemCount:     count,
		MarkupPercent: p,
		BaseSubtotal:  subtotal,
		MarkupAmount:  markup,
		FinalBase:     final,
		Subtotal:      subtotal.Mul(r),
		Markup:        markup.Mul(r),
		Total:         final.Mul(r),
		Lines:         lineTotals,
	}
	t.Display = DisplayTotals{
		Subtotal: Format(t.Subtotal, rate.Symbol),
		Markup:   Format(t.Markup, rate.Symbol),
		Total:    Format(t.Total, rate.Symbol),
	}
	return t
}

// Format renders amount with 4 decimals when it is between 0 and 1, otherwise 2,
// using banker's rounding.
func Format(amount decimal.Decimal, symbol string) string {
	places := int32(2)
	if amount.IsPositive() && amount.LessThan(one) {
		places = 4
	}
	return symbol + amount.StringFixedBank(places)
}

// RateLabel is the "1 INR = 0.012000 USD" line shown next to converted totals.
func RateLabel(rate domain.CurrencyRate) string {
	r := decimal.NewFromFloat(rate.RealTimeRate)
	if !r.IsPositive() {
		r = one
	}
	return fmt.Sprintf("1 %s = %s %s", domain.BaseCurrency, r.StringFixed(6), rate.Code)
}
