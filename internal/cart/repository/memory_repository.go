package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/domain"
)

var ErrCartNotFound = errors.New("cart not found")

type CartRepository interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCartByID(ctx context.Context, id string) (*domain.Cart, error)
	// UpdateCart applies fn to the stored cart and saves the result as one step.
	UpdateCart(ctx context.Context, id string, fn func(domain.Cart) domain.Cart) (*domain.Cart, error)
	DeleteCart(ctx context.Context, id string) error
}

type memoryCartRepository struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
	now   func() time.Time
}

func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{
		carts: make(map[string]domain.Cart),
		now:   time.Now,
	}
}

func (r *memoryCartRepository) CreateCart(ctx context.Context) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := r.now().UTC()
	c := domain.Cart{
		ID:        uuid.NewString(),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.carts[c.ID] = c
	r.mu.Unlock()
	return &c, nil
}

func (r *memoryCartRepository) GetCartByID(ctx context.Context, id string) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return &c, nil
}

func (r *memoryCartRepository) UpdateCart(ctx context.Context, id string, fn func(domain.Cart) domain.Cart) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	next := fn(c)
	// id dan waktu pembuatan tidak boleh diubah oleh fn
	next.ID = c.ID
	next.CreatedAt = c.CreatedAt
	if next.Items == nil {
		next.Items = []domain.CartItem{}
	}
	next.UpdatedAt = r.now().UTC()
	r.carts[id] = next
	return &next, nil
}

func (r *memoryCartRepository) DeleteCart(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(r.carts, id)
	return nil
}
