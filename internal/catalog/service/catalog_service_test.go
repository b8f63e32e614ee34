package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/repository"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SearchProducts(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc := NewCatalogService(mockRepo, domain.NewNormalizer(""), 2)
	ctx := context.TODO()

	t.Run("Filters, sorts and pages", func(t *testing.T) {
		mockRepo.On("ListProducts", ctx).Return(testCatalog(""), nil).Once()

		res, err := svc.SearchProducts(ctx, domain.SearchQuery{Brand: "Sun Pharma", SortBy: domain.SortByPriceLow})

		require.NoError(t, err)
		assert.Equal(t, []string{"SP-2", "SP-3"}, ids(res.Items))
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 2, res.Limit)
		assert.True(t, res.HasMore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo.On("ListProducts", ctx).Return(nil, errors.New("boom")).Once()

		res, err := svc.SearchProducts(ctx, domain.SearchQuery{})

		assert.Error(t, err)
		assert.Nil(t, res)
		mockRepo.AssertExpectations(t)
	})
}

func TestCatalogService_GetProductDetails(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc := NewCatalogService(mockRepo, domain.NewNormalizer(""), 0)
	ctx := context.TODO()

	t.Run("Found", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "CP-1").Return(&domain.Product{ID: "CP-1", Brand: "Cipla"}, nil).Once()

		p, err := svc.GetProductDetails(ctx, "CP-1")

		require.NoError(t, err)
		assert.Equal(t, "Cipla", p.Brand)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "nope").Return(nil, repository.ErrProductNotFound).Once()

		p, err := svc.GetProductDetails(ctx, "nope")

		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		assert.Nil(t, p)
	})
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetFacets(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc := NewCatalogService(mockRepo, domain.NewNormalizer(""), 0)
	ctx := context.TODO()
	mockRepo.On("ListProducts", ctx).Return(testCatalog(""), nil).Once()

	f, err := svc.GetFacets(ctx)

	require.NoError(t, err)
	assert.Equal(t, 6, f.TotalProducts)
	assert.Contains(t, f.Brands, "Mankind")
	mockRepo.AssertExpectations(t)
}
