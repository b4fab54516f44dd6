package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	catalogDomain "github.com/ridloal/go-shop-server/internal/catalog/domain"
	catalogRepo "github.com/ridloal/go-shop-server/internal/catalog/repository"
	"github.com/ridloal/go-shop-server/internal/order/domain"
	oRepo "github.com/ridloal/go-shop-server/internal/order/repository"
	repoMocks "github.com/ridloal/go-shop-server/internal/order/repository/mocks"
	svcMocks "github.com/ridloal/go-shop-server/internal/order/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pricing(id int64, name, price string) *catalogDomain.ProductPricing {
	return &catalogDomain.ProductPricing{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Image: "/images/placeholder.jpg",
	}
}

func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestOrderService_SubmitOrder(t *testing.T) {
	ctx := context.TODO()

	twoLineReq := domain.CreateOrderRequest{
		Email: "buyer@example.com",
		Products: []domain.CreateOrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	}

	t.Run("Successful submission computes decimal totals", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		mockTx := new(repoMocks.MockDBTX)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockOrderRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(1)).Return(pricing(1, "Backpack", "10.00"), nil).Once()
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(2)).Return(pricing(2, "T-Shirt", "3.33"), nil).Once()
		mockCatalog.On("DecrementStock", ctx, mockTx, int64(1), 2).Return(nil).Once()
		mockCatalog.On("DecrementStock", ctx, mockTx, int64(2), 3).Return(nil).Once()
		mockOrderRepo.On("InsertOrderItem", ctx, mockTx, mock.AnythingOfType("*domain.OrderItem")).Return(nil).Times(2)
		mockOrderRepo.On("UpdateOrderTotal", ctx, mockTx, int64(101), decEq("29.99")).Return(nil).Once()
		mockTx.On("Commit").Return(nil).Once()
		mockTx.On("Rollback").Return(sql.ErrTxDone).Maybe() // deferred rollback setelah commit

		resp, err := svc.SubmitOrder(ctx, twoLineReq)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, int64(101), resp.ID)
		assert.Equal(t, "buyer@example.com", resp.CustomerEmail)
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("29.99")), "order total = %s", resp.Total)
		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.Items[0].Total.Equal(decimal.RequireFromString("20.00")), "line 1 total = %s", resp.Items[0].Total)
		assert.True(t, resp.Items[1].Total.Equal(decimal.RequireFromString("9.99")), "line 2 total = %s", resp.Items[1].Total)
		assert.Equal(t, int64(101), resp.Items[0].OrderID)
		if assert.NotNil(t, resp.Items[0].ProductName) {
			assert.Equal(t, "Backpack", *resp.Items[0].ProductName)
		}
		assert.False(t, resp.OrderDate.IsZero())
		mockOrderRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
		mockTx.AssertExpectations(t)
	})

	t.Run("Line total rounds at the half-cent boundary", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		mockTx := new(repoMocks.MockDBTX)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		req := domain.CreateOrderRequest{
			Email:    "buyer@example.com",
			Products: []domain.CreateOrderItemRequest{{ProductID: 7, Quantity: 3}},
		}

		mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockOrderRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
		// 0.335 * 3 = 1.005 -> harus 1.01, bukan 1.00 hasil truncation float biner
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(7)).Return(pricing(7, "Sticker", "0.335"), nil).Once()
		mockCatalog.On("DecrementStock", ctx, mockTx, int64(7), 3).Return(nil).Once()
		mockOrderRepo.On("InsertOrderItem", ctx, mockTx, mock.AnythingOfType("*domain.OrderItem")).Return(nil).Once()
		mockOrderRepo.On("UpdateOrderTotal", ctx, mockTx, int64(101), decEq("1.01")).Return(nil).Once()
		mockTx.On("Commit").Return(nil).Once()
		mockTx.On("Rollback").Return(sql.ErrTxDone).Maybe()

		resp, err := svc.SubmitOrder(ctx, req)

		assert.NoError(t, err)
		assert.True(t, resp.Items[0].Total.Equal(decimal.RequireFromString("1.01")), "line total = %s", resp.Items[0].Total)
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("1.01")))
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Unknown product aborts the whole transaction", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		mockTx := new(repoMocks.MockDBTX)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockOrderRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(1)).Return(pricing(1, "Backpack", "10.00"), nil).Once()
		mockCatalog.On("DecrementStock", ctx, mockTx, int64(1), 2).Return(nil).Once()
		mockOrderRepo.On("InsertOrderItem", ctx, mockTx, mock.AnythingOfType("*domain.OrderItem")).Return(nil).Once()
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(2)).Return(nil, catalogRepo.ErrProductNotFound).Once()
		mockTx.On("Rollback").Return(nil).Once()

		resp, err := svc.SubmitOrder(ctx, twoLineReq)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Contains(t, err.Error(), "product_id 2")
		mockTx.AssertNotCalled(t, "Commit")
		mockOrderRepo.AssertNotCalled(t, "UpdateOrderTotal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockOrderRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
		mockTx.AssertExpectations(t)
	})

	t.Run("Insufficient stock aborts the whole transaction", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		mockTx := new(repoMocks.MockDBTX)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockOrderRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(1)).Return(pricing(1, "Backpack", "10.00"), nil).Once()
		mockCatalog.On("DecrementStock", ctx, mockTx, int64(1), 2).Return(catalogRepo.ErrInsufficientStock).Once()
		mockTx.On("Rollback").Return(nil).Once()

		resp, err := svc.SubmitOrder(ctx, twoLineReq)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Contains(t, err.Error(), "product_id 1")
		mockTx.AssertNotCalled(t, "Commit")
		mockOrderRepo.AssertNotCalled(t, "InsertOrderItem", mock.Anything, mock.Anything, mock.Anything)
		mockTx.AssertExpectations(t)
	})

	t.Run("Empty product list is rejected before any storage work", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		resp, err := svc.SubmitOrder(ctx, domain.CreateOrderRequest{Email: "buyer@example.com"})

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrEmptyOrder)
		mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Storage error on order insert surfaces as creation failure", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		mockTx := new(repoMocks.MockDBTX)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		repoErr := errors.New("db is down")
		mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockOrderRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*domain.Order")).Return(repoErr).Once()
		mockTx.On("Rollback").Return(nil).Once()

		resp, err := svc.SubmitOrder(ctx, twoLineReq)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrOrderCreationFailed)
		assert.Contains(t, err.Error(), repoErr.Error())
		mockCatalog.AssertNotCalled(t, "GetProductPricing", mock.Anything, mock.Anything, mock.Anything)
		mockTx.AssertExpectations(t)
	})

	t.Run("Commit failure surfaces as creation failure", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(svcMocks.MockPriceReader)
		mockTx := new(repoMocks.MockDBTX)
		svc := NewOrderService(mockOrderRepo, mockCatalog)

		req := domain.CreateOrderRequest{
			Email:    "buyer@example.com",
			Products: []domain.CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
		}

		mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockOrderRepo.On("InsertOrder", ctx, mockTx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
		mockCatalog.On("GetProductPricing", ctx, mockTx, int64(1)).Return(pricing(1, "Backpack", "10.00"), nil).Once()
		mockCatalog.On("DecrementStock", ctx, mockTx, int64(1), 1).Return(nil).Once()
		mockOrderRepo.On("InsertOrderItem", ctx, mockTx, mock.AnythingOfType("*domain.OrderItem")).Return(nil).Once()
		mockOrderRepo.On("UpdateOrderTotal", ctx, mockTx, int64(101), decEq("10.00")).Return(nil).Once()
		mockTx.On("Commit").Return(errors.New("serialization failure")).Once()
		mockTx.On("Rollback").Return(nil).Once()

		resp, err := svc.SubmitOrder(ctx, req)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrOrderCreationFailed)
		mockTx.AssertExpectations(t)
	})
}

func TestOrderService_GetOrderDetails(t *testing.T) {
	ctx := context.TODO()
	orderID := int64(55)

	t.Run("Merges order with live-enriched items", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockOrderRepo, new(svcMocks.MockPriceReader))

		name := "Backpack"
		price := decimal.RequireFromString("12.50") // harga katalog SEKARANG, bukan saat order
		order := &domain.Order{ID: orderID, CustomerEmail: "buyer@example.com", Total: decimal.RequireFromString("20.00")}
		items := []domain.OrderItem{
			{ID: 1, OrderID: orderID, ProductID: 1, Quantity: 2, Total: decimal.RequireFromString("20.00"), ProductName: &name, ProductPrice: &price},
		}
		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mockOrderRepo.On("ListOrderItemsWithProducts", ctx, orderID).Return(items, nil).Once()

		resp, err := svc.GetOrderDetails(ctx, orderID)

		assert.NoError(t, err)
		assert.Equal(t, orderID, resp.ID)
		assert.Len(t, resp.Items, 1)
		// snapshot tetap 20.00 meski harga katalog sudah 12.50
		assert.True(t, resp.Items[0].Total.Equal(decimal.RequireFromString("20.00")))
		assert.True(t, resp.Items[0].ProductPrice.Equal(decimal.RequireFromString("12.50")))
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Order not found propagates", func(t *testing.T) {
		mockOrderRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockOrderRepo, new(svcMocks.MockPriceReader))

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(nil, oRepo.ErrOrderNotFound).Once()

		resp, err := svc.GetOrderDetails(ctx, orderID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, oRepo.ErrOrderNotFound)
		mockOrderRepo.AssertNotCalled(t, "ListOrderItemsWithProducts", mock.Anything, mock.Anything)
	})
}
