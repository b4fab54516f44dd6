package service

import (
	"context"
	"errors"
	"fmt"

	catalogDomain "github.com/ridloal/go-shop-server/internal/catalog/domain"
	catalogRepo "github.com/ridloal/go-shop-server/internal/catalog/repository"
	"github.com/ridloal/go-shop-server/internal/order/domain"
	"github.com/ridloal/go-shop-server/internal/order/repository"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrProductNotFound     = errors.New("order references a product that does not exist")
	ErrInsufficientStock   = errors.New("insufficient stock for one or more items")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
)

// PriceReader adalah bagian katalog yang dibutuhkan transaksi order:
// harga otoritatif saat ini plus pengurangan stok, keduanya lewat
// transaction handle milik order supaya satu unit atomik.
type PriceReader interface {
	GetProductPricing(ctx context.Context, dbops catalogRepo.DBTX, productID int64) (*catalogDomain.ProductPricing, error)
	DecrementStock(ctx context.Context, dbops catalogRepo.DBTX, productID int64, quantity int) error
}

type OrderService interface {
	SubmitOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.OrderWithItems, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderDetails(ctx context.Context, orderID int64) (*domain.OrderWithItems, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	catalog   PriceReader
}

func NewOrderService(or repository.OrderRepository, catalog PriceReader) OrderService {
	return &orderServiceImpl{
		orderRepo: or,
		catalog:   catalog,
	}
}

// SubmitOrder menjalankan seluruh pembuatan order dalam SATU transaksi:
// insert order -> per item baca harga katalog + kurangi stok + insert item
// -> update grand total. Gagal di langkah manapun (produk tidak ada, stok
// kurang, error storage, ctx dibatalkan) membatalkan seluruh transaksi;
// tidak pernah ada order parsial yang terlihat pembaca.
func (s *orderServiceImpl) SubmitOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.OrderWithItems, error) {
	if len(req.Products) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("SubmitOrder: begin tx failed", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	defer tx.Rollback() // Rollback jika tidak di-commit

	// 1. Baris order dengan total placeholder; id dan order_date dari RETURNING
	order := &domain.Order{
		CustomerEmail: req.Email,
		Total:         decimal.Zero,
	}
	if err := s.orderRepo.InsertOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// 2-3. Per line: harga saat ini dari katalog (di dalam tx yang sama,
	// harga kiriman client tidak pernah dipercaya), line total decimal,
	// pengurangan stok, lalu simpan item.
	items := make([]domain.OrderItem, 0, len(req.Products))
	grandTotal := decimal.Zero
	for _, line := range req.Products {
		pricing, err := s.catalog.GetProductPricing(ctx, tx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product_id %d", ErrProductNotFound, line.ProductID)
			}
			logger.Error("SubmitOrder: price lookup failed", err, map[string]interface{}{"product_id": line.ProductID})
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}

		if err := s.catalog.DecrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, catalogRepo.ErrInsufficientStock) {
				return nil, fmt.Errorf("%w: product_id %d, quantity %d", ErrInsufficientStock, line.ProductID, line.Quantity)
			}
			logger.Error("SubmitOrder: stock decrement failed", err, map[string]interface{}{"product_id": line.ProductID})
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}

		lineTotal := pricing.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		item := domain.OrderItem{
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			Total:        lineTotal,
			ProductName:  &pricing.Name,
			ProductPrice: &pricing.Price,
			ProductImage: &pricing.Image,
		}
		if err := s.orderRepo.InsertOrderItem(ctx, tx, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}

		grandTotal = grandTotal.Add(lineTotal)
		items = append(items, item)
	}

	// 4. Grand total = jumlah eksak line total yang tersimpan, bukan dari request
	order.Total = grandTotal.Round(2)
	if err := s.orderRepo.UpdateOrderTotal(ctx, tx, order.ID, order.Total); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("SubmitOrder: commit tx failed", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// 5. Response: order + item dengan atribut produk per waktu order
	return &domain.OrderWithItems{Order: *order, Items: items}, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

// GetOrderDetails mengembalikan order beserta itemnya; enrichment product_*
// dibaca live dari katalog saat fetch, item.total tetap snapshot waktu order.
func (s *orderServiceImpl) GetOrderDetails(ctx context.Context, orderID int64) (*domain.OrderWithItems, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.ListOrderItemsWithProducts(ctx, orderID)
	if err != nil {
		logger.Error("GetOrderDetails: failed to load items", err, map[string]interface{}{"order_id": orderID})
		return nil, err
	}
	return &domain.OrderWithItems{Order: *order, Items: items}, nil
}
