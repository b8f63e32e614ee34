package domain

import (
	"math"
	"time"

	catalogDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/spf13/cast"
)

// MarkupPresets are the percentages offered as one-click markup buttons.
var MarkupPresets = []float64{5, 10, 15, 20, 25, 50}

// CartItem is the subset of a product kept in the cart. PackSize carries the
// product's own "quantity" field (e.g. "10 tablets"); Quantity is how many the
// customer wants and is always >= 1 while the item is in the cart.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	Brand       string  `json:"brand"`
	Product     string  `json:"product"`
	Composition string  `json:"composition"`
	Packing     string  `json:"packing"`
	Potency     string  `json:"potency"`
	PackSize    string  `json:"pack_size"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Cart struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	MarkupPercent float64    `json:"markup_percent"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Semua operasi di bawah mengembalikan Cart baru; slice Items lama tidak pernah diubah.

func NewCartItem(p catalogDomain.Product, qty int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Brand:       p.Brand,
		Product:     p.Product,
		Composition: p.Composition,
		Packing:     p.Packing,
		Potency:     p.Potency,
		PackSize:    p.Quantity,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    qty,
	}
}

// AddItem merges by product id. qty below 1 is treated as 1.
func AddItem(c Cart, p catalogDomain.Product, qty int) Cart {
	if qty < 1 {
		qty = 1
	}
	items := copyItems(c.Items)
	if i := indexOf(items, p.ID); i >= 0 {
		items[i].Quantity += qty
	} else {
		items = append(items, NewCartItem(p, qty))
	}
	c.Items = items
	return c
}

// SetQuantity replaces the quantity of an existing item; qty <= 0 removes it.
// An id that is not in the cart is a no-op.
func SetQuantity(c Cart, productID string, qty int) Cart {
	if qty <= 0 {
		return RemoveItem(c, productID)
	}
	i := indexOf(c.Items, productID)
	if i < 0 {
		return c
	}
	items := copyItems(c.Items)
	items[i].Quantity = qty
	c.Items = items
	return c
}

// UpdateQuantity adds delta, floors at zero and removes the item at zero.
func UpdateQuantity(c Cart, productID string, delta int) Cart {
	i := indexOf(c.Items, productID)
	if i < 0 {
		return c
	}
	next := c.Items[i].Quantity + delta
	if next <= 0 {
		return RemoveItem(c, productID)
	}
	items := copyItems(c.Items)
	items[i].Quantity = next
	c.Items = items
	return c
}

func RemoveItem(c Cart, productID string) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	c.Items = items
	return c
}

// Clear empties the cart and resets the markup.
func Clear(c Cart) Cart {
	c.Items = []CartItem{}
	c.MarkupPercent = 0
	return c
}

func ItemCount(c Cart) int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// ApplyMarkup ignores negative or non-finite percentages.
func ApplyMarkup(c Cart, percent float64) Cart {
	if !validPercent(percent) {
		return c
	}
	c.MarkupPercent = percent
	return c
}

func ResetMarkup(c Cart) Cart {
	c.MarkupPercent = 0
	return c
}

// ParseQuantity accepts whole numbers given as JSON numbers or numeric strings.
// nil, booleans, fractions and non-numeric text are rejected.
func ParseQuantity(v interface{}) (int, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// ParsePercentage accepts any finite number >= 0.
func ParsePercentage(v interface{}) (float64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !validPercent(f) {
		return 0, false
	}
	return f, true
}

func validPercent(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}

func indexOf(items []CartItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func copyItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items), len(items)+1)
	copy(out, items)
	return out
}
