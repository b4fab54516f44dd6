package mocks

import (
	"context"

	catalogDomain "github.com/ridloal/go-shop-server/internal/catalog/domain"
	catalogRepo "github.com/ridloal/go-shop-server/internal/catalog/repository"
	"github.com/stretchr/testify/mock"
)

type MockPriceReader struct {
	mock.Mock
}

func (m *MockPriceReader) GetProductPricing(ctx context.Context, dbops catalogRepo.DBTX, productID int64) (*catalogDomain.ProductPricing, error) {
	args := m.Called(ctx, dbops, productID)
	if p := args.Get(0); p != nil {
		return p.(*catalogDomain.ProductPricing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPriceReader) DecrementStock(ctx context.Context, dbops catalogRepo.DBTX, productID int64, quantity int) error {
	args := m.Called(ctx, dbops, productID, quantity)
	return args.Error(0)
}
