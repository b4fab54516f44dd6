package mocks

import (
	"context"

	"github.com/ridloal/go-shop-server/internal/catalog/domain"
	"github.com/ridloal/go-shop-server/internal/catalog/repository"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	if p := args.Get(0); p != nil {
		return p.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductPricing(ctx context.Context, dbops repository.DBTX, productID int64) (*domain.ProductPricing, error) {
	args := m.Called(ctx, dbops, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.ProductPricing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, dbops repository.DBTX, productID int64, quantity int) error {
	args := m.Called(ctx, dbops, productID, quantity)
	return args.Error(0)
}
