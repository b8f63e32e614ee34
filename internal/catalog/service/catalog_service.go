package service

import (
	"context"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/repository"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
)

const DefaultPageSize = 50

type CatalogService interface {
	SearchProducts(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error)
	GetProductDetails(ctx context.Context, productID string) (*domain.Product, error)
	GetFacets(ctx context.Context) (*domain.Facets, error)
}

type catalogServiceImpl struct {
	repo       repository.ProductRepository
	normalizer domain.Normalizer
	pageSize   int
}

func NewCatalogService(repo repository.ProductRepository, n domain.Normalizer, pageSize int) CatalogService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &catalogServiceImpl{
		repo:       repo,
		normalizer: n,
		pageSize:   pageSize,
	}
}

func (s *catalogServiceImpl) SearchProducts(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("SearchProducts: failed to list products", err, nil)
		return nil, err
	}

	sorted := Search(products, q, s.normalizer)
	result := Paginate(sorted, q.Offset, q.Limit, q.All, s.pageSize)
	return &result, nil
}

func (s *catalogServiceImpl) GetProductDetails(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *catalogServiceImpl) GetFacets(ctx context.Context) (*domain.Facets, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("GetFacets: failed to list products", err, nil)
		return nil, err
	}
	facets := BuildFacets(products)
	return &facets, nil
}
