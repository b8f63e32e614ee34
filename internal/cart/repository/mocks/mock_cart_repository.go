package mocks

import (
	"context"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/domain"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository.UpdateCart applies fn to the cart passed as the first
// Return value and hands back the result.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) CreateCart(ctx context.Context) (*domain.Cart, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetCartByID(ctx context.Context, id string) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) UpdateCart(ctx context.Context, id string, fn func(domain.Cart) domain.Cart) (*domain.Cart, error) {
	args := m.Called(ctx, id, fn)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	next := fn(*res.(*domain.Cart))
	return &next, args.Error(1)
}

func (m *MockCartRepository) DeleteCart(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
