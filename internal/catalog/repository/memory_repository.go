package repository

import (
	"context"
	"errors"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
}

// memoryProductRepository serves the static catalog. It is never written to after
// construction, so reads need no locking.
type memoryProductRepository struct {
	products []domain.Product
	byID     map[string]int
}

func NewMemoryProductRepository(products []domain.Product) ProductRepository {
	r := &memoryProductRepository{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(r.products, products)
	for i, p := range r.products {
		if _, dup := r.byID[p.ID]; !dup {
			r.byID[p.ID] = i
		}
	}
	return r
}

func (r *memoryProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := r.products[idx]
	return &p, nil
}
