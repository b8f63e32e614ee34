package service

import (
	"context"
	"strings"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/repository"
	currencyDomain "github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/pricing"
)

// Raw quantity, delta and percent values come straight from request JSON. Values
// that do not parse leave the cart unchanged and are not reported as errors.
type CartService interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	DeleteCart(ctx context.Context, cartID string) error
	AddItem(ctx context.Context, cartID, productID string, rawQty interface{}) (*domain.Cart, error)
	SetItemQuantity(ctx context.Context, cartID, productID string, rawQty interface{}) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, cartID, productID string, rawDelta interface{}) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) (*domain.Cart, error)
	ApplyMarkup(ctx context.Context, cartID string, rawPercent interface{}) (*domain.Cart, error)
	ResetMarkup(ctx context.Context, cartID string) (*domain.Cart, error)
	GetTotals(ctx context.Context, cartID, currencyCode string) (*pricing.Totals, error)
}

type cartServiceImpl struct {
	cartRepo      repository.CartRepository
	catalogClient CatalogClient
	rates         RateSource
}

func NewCartService(cr repository.CartRepository, cc CatalogClient, rs RateSource) CartService {
	return &cartServiceImpl{
		cartRepo:      cr,
		catalogClient: cc,
		rates:         rs,
	}
}

func (s *cartServiceImpl) CreateCart(ctx context.Context) (*domain.Cart, error) {
	c, err := s.cartRepo.CreateCart(ctx)
	if err != nil {
		logger.Error("CreateCart: repository error", err)
		return nil, err
	}
	logger.Info("Cart %s created", c.ID)
	return c, nil
}

func (s *cartServiceImpl) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.cartRepo.GetCartByID(ctx, cartID)
}

func (s *cartServiceImpl) DeleteCart(ctx context.Context, cartID string) error {
	return s.cartRepo.DeleteCart(ctx, cartID)
}

func (s *cartServiceImpl) AddItem(ctx context.Context, cartID, productID string, rawQty interface{}) (*domain.Cart, error) {
	// Cek cart dulu supaya cart yang tidak ada tidak memicu panggilan ke catalog.
	if _, err := s.cartRepo.GetCartByID(ctx, cartID); err != nil {
		return nil, err
	}

	qty, ok := domain.ParseQuantity(rawQty)
	if !ok {
		qty = 1
	}

	product, err := s.catalogClient.GetProduct(ctx, productID)
	if err != nil {
		logger.Error("AddItem: failed to fetch product from catalog", err)
		return nil, err
	}

	return s.cartRepo.UpdateCart(ctx, cartID, func(c domain.Cart) domain.Cart {
		return domain.AddItem(c, *product, qty)
	})
}

func (s *cartServiceImpl) SetItemQuantity(ctx context.Context, cartID, productID string, rawQty interface{}) (*domain.Cart, error) {
	qty, ok := domain.ParseQuantity(rawQty)
	if !ok {
		logger.Warn("SetItemQuantity: ignoring invalid quantity %v for cart %s", rawQty, cartID)
		return s.cartRepo.GetCartByID(ctx, cartID)
	}
	return s.cartRepo.UpdateCart(ctx, cartID, func(c domain.Cart) domain.Cart {
		return domain.SetQuantity(c, productID, qty)
	})
}

func (s *cartServiceImpl) UpdateItemQuantity(ctx context.Context, cartID, productID string, rawDelta interface{}) (*domain.Cart, error) {
	delta, ok := domain.ParseQuantity(rawDelta)
	if !ok {
		logger.Warn("UpdateItemQuantity: ignoring invalid delta %v for cart %s", rawDelta, cartID)
		return s.cartRepo.GetCartByID(ctx, cartID)
	}
	return s.cartRepo.UpdateCart(ctx, cartID, func(c domain.Cart) domain.Cart {
		return domain.UpdateQuantity(c, productID, delta)
	})
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	return s.cartRepo.UpdateCart(ctx, cartID, func(c domain.Cart) domain.Cart {
		return domain.RemoveItem(c, productID)
	})
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.cartRepo.UpdateCart(ctx, cartID, domain.Clear)
}

func (s *cartServiceImpl) ApplyMarkup(ctx context.Context, cartID string, rawPercent interface{}) (*domain.Cart, error) {
	p, ok := domain.ParsePercentage(rawPercent)
	if !ok {
		logger.Warn("ApplyMarkup: ignoring invalid percentage %v for cart %s", rawPercent, cartID)
		return s.cartRepo.GetCartByID(ctx, cartID)
	}
	return s.cartRepo.UpdateCart(ctx, cartID, func(c domain.Cart) domain.Cart {
		return domain.ApplyMarkup(c, p)
	})
}

func (s *cartServiceImpl) ResetMarkup(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.cartRepo.UpdateCart(ctx, cartID, domain.ResetMarkup)
}

// GetTotals prices the cart in currencyCode (base currency when empty). An unknown
// code is priced at the identity rate.
func (s *cartServiceImpl) GetTotals(ctx context.Context, cartID, currencyCode string) (*pricing.Totals, error) {
	c, err := s.cartRepo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(currencyCode)
	if code == "" {
		code = currencyDomain.BaseCurrency
	}
	table, warning := s.rates.CurrentRates(ctx)
	rate := pricing.ResolveRate(table, code)

	totals := pricing.Calculate(PricingLines(*c), c.MarkupPercent, rate)
	totals.Warning = warning
	return &totals, nil
}

func PricingLines(c domain.Cart) []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, pricing.Line{
			ProductID: it.ProductID,
			Name:      it.Product,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}
	return lines
}
