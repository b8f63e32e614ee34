package domain

// Default values for product records that omit a field.
const (
	DefaultBrand       = "Unknown Brand"
	DefaultProductName = "Unknown Product"
	DefaultComposition = "No Composition Info"
	DefaultPacking     = "No Packaging Info"
	DefaultPotency     = "N/A"
	DefaultQuantity    = "N/A"
	DefaultCategory    = "Uncategorized"
	DefaultCount       = 1
)

// RawProduct is a catalog record as it appears in the source data. Every field may
// be missing; price and count may be numbers or numeric strings.
type RawProduct struct {
	ID          string      `json:"id"`
	Brand       string      `json:"brand"`
	Product     string      `json:"product"`
	Composition string      `json:"composition"`
	Packing     string      `json:"packing"`
	Potency     string      `json:"potency"`
	Quantity    string      `json:"quantity"`
	Category    string      `json:"category"`
	Price       interface{} `json:"price"`
	Count       interface{} `json:"count"`
}

// Product is immutable once loaded. Price is in the base currency (INR).
type Product struct {
	ID          string            `json:"id"`
	Brand       string            `json:"brand"`
	Product     string            `json:"product"`
	Composition string            `json:"composition"`
	Packing     string            `json:"packing"`
	Potency     string            `json:"potency"`
	Quantity    string            `json:"quantity"` // ukuran kemasan, bukan jumlah di cart
	Category    string            `json:"category"`
	Price       float64           `json:"price"`
	Count       int               `json:"count"`
	Normalized  NormalizedProduct `json:"-"`
}

// NormalizedProduct holds the search projection of a product.
type NormalizedProduct struct {
	Brand       string
	Product     string
	Composition string
	Packing     string
	ID          string
	Category    string
	All         string
}
