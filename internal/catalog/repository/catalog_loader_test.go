package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanProduct_Defaults(t *testing.T) {
	n := domain.NewNormalizer(domain.CollapseWhitespace)

	p := CleanProduct(domain.RawProduct{}, n)

	assert.Equal(t, domain.DefaultBrand, p.Brand)
	assert.Equal(t, domain.DefaultProductName, p.Product)
	assert.Equal(t, domain.DefaultComposition, p.Composition)
	assert.Equal(t, domain.DefaultPacking, p.Packing)
	assert.Equal(t, domain.DefaultPotency, p.Potency)
	assert.Equal(t, domain.DefaultQuantity, p.Quantity)
	assert.Equal(t, domain.DefaultCategory, p.Category)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 1, p.Count)
	assert.True(t, strings.HasPrefix(p.ID, "p-"))
	// placeholders are not searchable, only real text is
	assert.Equal(t, "", p.Normalized.Composition)
	assert.Equal(t, "unknown brand", p.Normalized.Brand)
}

func TestCleanProduct_NormalizedProjection(t *testing.T) {
	n := domain.NewNormalizer(domain.CollapseWhitespace)
	raw := domain.RawProduct{
		ID: "CP-001", Brand: "  Cipla ", Product: "Azee   500", Composition: "Azithromycin 500mg",
		Quantity: "10x3 Tablets", Category: "Tablets", Price: "355.50", Count: 0,
	}

	p := CleanProduct(raw, n)

	assert.Equal(t, "  Cipla ", p.Brand)
	assert.Equal(t, "10x3 Tablets", p.Packing)
	assert.Equal(t, 355.5, p.Price)
	assert.Equal(t, 1, p.Count)
	assert.Equal(t, "cipla", p.Normalized.Brand)
	assert.Equal(t, "azee 500", p.Normalized.Product)
	assert.Equal(t, "cp-001", p.Normalized.ID)
	assert.Equal(t, "cipla azee 500 azithromycin 500mg 10x3 tablets cp-001 tablets", p.Normalized.All)
}

func TestCleanProduct_InvalidNumbersTakeDefaults(t *testing.T) {
	p := CleanProduct(domain.RawProduct{Price: "free", Count: "many"}, domain.NewNormalizer(""))
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 1, p.Count)
}

func TestStableProductID_Deterministic(t *testing.T) {
	a := StableProductID("Cipla", "Azee 500", "Azithromycin")
	b := StableProductID("CIPLA", "  azee   500", "azithromycin")
	c := StableProductID("Cipla", "Azee 250", "Azithromycin")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len("p-")+16)
}

func TestCleanProducts_DuplicateGeneratedIDs(t *testing.T) {
	raws := []domain.RawProduct{
		{Brand: "X", Product: "Same"},
		{Brand: "X", Product: "Same"},
		{ID: "kept", Brand: "Y"},
	}
	products := CleanProducts(raws, domain.NewNormalizer(""))

	require.Len(t, products, 3)
	assert.NotEqual(t, products[0].ID, products[1].ID)
	assert.Equal(t, products[0].ID+"-2", products[1].ID)
	assert.Equal(t, domain.NormalizeText(products[1].ID), products[1].Normalized.ID)
	assert.Equal(t, "kept", products[2].ID)

	again := CleanProducts(raws, domain.NewNormalizer(""))
	assert.Equal(t, products, again)
}

func TestLoadCatalog_Embedded(t *testing.T) {
	products, err := LoadCatalog("", domain.NewNormalizer(domain.CollapseWhitespace))
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Equal(t, "SP-001", products[0].ID)

	repo := NewMemoryProductRepository(products)
	p, err := repo.GetProductByID(context.Background(), "CP-003")
	require.NoError(t, err)
	assert.Equal(t, 148.5, p.Price)

	_, err = repo.GetProductByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"A1","brand":"Acme","price":10}]`), 0o600))

	products, err := LoadCatalog(path, domain.NewNormalizer(""))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Acme", products[0].Brand)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"), domain.NewNormalizer(""))
	assert.Error(t, err)
}

func TestMemoryProductRepository_ListIsACopy(t *testing.T) {
	repo := NewMemoryProductRepository([]domain.Product{{ID: "a", Brand: "A"}})
	list, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	list[0].Brand = "mutated"

	again, _ := repo.ListProducts(context.Background())
	assert.Equal(t, "A", again[0].Brand)
}
