package mocks

import (
	"context"
	"time"

	"github.com/ridloal/go-shop-server/internal/order/domain"
	"github.com/ridloal/go-shop-server/internal/order/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock

	itemSeq int64
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (repository.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) InsertOrder(ctx context.Context, dbops repository.DBTX, order *domain.Order) error {
	args := m.Called(ctx, dbops, order)
	if order != nil && args.Error(0) == nil {
		order.ID = 101 // id dari mock
		order.OrderDate = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return args.Error(0)
}

func (m *MockOrderRepository) InsertOrderItem(ctx context.Context, dbops repository.DBTX, item *domain.OrderItem) error {
	args := m.Called(ctx, dbops, item)
	if item != nil && args.Error(0) == nil {
		m.itemSeq++
		item.ID = m.itemSeq
	}
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderTotal(ctx context.Context, dbops repository.DBTX, orderID int64, total decimal.Decimal) error {
	args := m.Called(ctx, dbops, orderID, total)
	return args.Error(0)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrderItemsWithProducts(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if oi := args.Get(0); oi != nil {
		return oi.([]domain.OrderItem), args.Error(1)
	}
	return nil, args.Error(1)
}
