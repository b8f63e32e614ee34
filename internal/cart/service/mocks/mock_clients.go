package mocks

import (
	"context"

	catalogDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	currencyDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) GetProduct(ctx context.Context, productID string) (*catalogDomain.Product, error) {
	args := m.Called(ctx, productID)
	if res := args.Get(0); res != nil {
		return res.(*catalogDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) CurrentRates(ctx context.Context) (currencyDomain.RateTable, string) {
	args := m.Called(ctx)
	return args.Get(0).(currencyDomain.RateTable), args.String(1)
}
