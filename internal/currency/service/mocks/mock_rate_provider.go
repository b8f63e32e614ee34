package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRateProvider struct {
	mock.Mock
	ProviderName string
}

func (m *MockRateProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	if res := args.Get(0); res != nil {
		return res.(map[string]float64), args.Error(1)
	}
	return nil, args.Error(1)
}
