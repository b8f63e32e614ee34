package repository

import (
	"bytes"
	"embed"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/spf13/cast"
)

//go:embed data/products.json
var seedFS embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadCatalog membaca katalog bawaan, atau file di path jika diisi, lalu membersihkannya.
func LoadCatalog(path string, n domain.Normalizer) ([]domain.Product, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		logger.Info("Loading catalog from %s", path)
	} else {
		data, err = seedFS.ReadFile("data/products.json")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
		}
	}

	raws, err := DecodeRawProducts(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return CleanProducts(raws, n), nil
}

func DecodeRawProducts(r io.Reader) ([]domain.RawProduct, error) {
	var raws []domain.RawProduct
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("failed to decode catalog records: %w", err)
	}
	return raws, nil
}

// CleanProducts maps raw records to products in input order. Generated ids are
// made unique by suffixing "-2", "-3"... in order of appearance.
func CleanProducts(raws []domain.RawProduct, n domain.Normalizer) []domain.Product {
	products := make([]domain.Product, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for _, raw := range raws {
		p := CleanProduct(raw, n)
		if strings.TrimSpace(raw.ID) == "" {
			if c := seen[p.ID]; c > 0 {
				p.ID = fmt.Sprintf("%s-%d", p.ID, c+1)
				p.Normalized = normalizedProjection(p, raw, n)
			}
		}
		seen[p.ID]++
		products = append(products, p)
	}
	return products
}

// CleanProduct applies the field defaults and builds the search projection.
func CleanProduct(raw domain.RawProduct, n domain.Normalizer) domain.Product {
	p := domain.Product{
		ID:          strings.TrimSpace(raw.ID),
		Brand:       orDefault(raw.Brand, domain.DefaultBrand),
		Product:     orDefault(raw.Product, domain.DefaultProductName),
		Composition: orDefault(raw.Composition, domain.DefaultComposition),
		Packing:     orDefault(packingSource(raw), domain.DefaultPacking),
		Potency:     orDefault(raw.Potency, domain.DefaultPotency),
		Quantity:    orDefault(raw.Quantity, domain.DefaultQuantity),
		Category:    orDefault(raw.Category, domain.DefaultCategory),
		Price:       parsePrice(raw.Price),
		Count:       parseCount(raw.Count),
	}
	if p.ID == "" {
		p.ID = StableProductID(p.Brand, p.Product, raw.Composition)
	}
	p.Normalized = normalizedProjection(p, raw, n)
	return p
}

// StableProductID derives an id from the identifying text fields so that a record
// without an id keeps the same id across reloads.
func StableProductID(brand, product, composition string) string {
	h := fnv.New64a()
	for _, part := range []string{brand, product, composition} {
		_, _ = h.Write([]byte(domain.NormalizeText(part)))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("p-%016x", h.Sum64())
}

func normalizedProjection(p domain.Product, raw domain.RawProduct, n domain.Normalizer) domain.NormalizedProduct {
	np := domain.NormalizedProduct{
		Brand:       n.Normalize(p.Brand),
		Product:     n.Normalize(p.Product),
		Composition: n.Normalize(raw.Composition),
		Packing:     n.Normalize(packingSource(raw)),
		ID:          n.Normalize(p.ID),
		Category:    n.Normalize(raw.Category),
	}
	np.All = strings.Join([]string{np.Brand, np.Product, np.Composition, np.Packing, np.ID, np.Category}, " ")
	return np
}

// packingSource: data lama hanya punya "quantity" untuk kemasan.
func packingSource(raw domain.RawProduct) string {
	if strings.TrimSpace(raw.Packing) != "" {
		return raw.Packing
	}
	return raw.Quantity
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func parsePrice(v interface{}) float64 {
	if v == nil {
		return 0
	}
	price, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return price
}

func parseCount(v interface{}) int {
	if v == nil {
		return domain.DefaultCount
	}
	count, err := cast.ToIntE(v)
	if err != nil || count == 0 {
		return domain.DefaultCount
	}
	return count
}
