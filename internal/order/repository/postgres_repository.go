package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq" // Untuk pq.Error
	"github.com/ridloal/go-shop-server/internal/order/domain"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidOrderItem = errors.New("order item references an invalid product")
)

// DBTX adalah interface yang bisa berupa *sql.DB atau *sql.Tx
// (bisa sama dengan yg di catalog repo).
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type OrderRepository interface {
	BeginTx(ctx context.Context) (DBTX, error)

	// Write path: semua dipanggil di dalam satu transaksi oleh service
	InsertOrder(ctx context.Context, dbops DBTX, order *domain.Order) error
	InsertOrderItem(ctx context.Context, dbops DBTX, item *domain.OrderItem) error
	UpdateOrderTotal(ctx context.Context, dbops DBTX, orderID int64, total decimal.Decimal) error

	// Read path
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrderItemsWithProducts(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

// InsertOrder menyimpan baris order dengan total placeholder. Total final
// di-set lewat UpdateOrderTotal setelah semua item tersimpan.
func (r *postgresOrderRepository) InsertOrder(ctx context.Context, dbops DBTX, order *domain.Order) error {
	query := `INSERT INTO orders (customer_email, total, order_date)
              VALUES ($1, $2, $3) RETURNING id, order_date`

	order.OrderDate = time.Now()
	err := dbops.QueryRowContext(ctx, query, order.CustomerEmail, order.Total, order.OrderDate).
		Scan(&order.ID, &order.OrderDate)
	if err != nil {
		logger.Error("InsertOrder: failed to insert order", err, nil)
		return err
	}
	return nil
}

func (r *postgresOrderRepository) InsertOrderItem(ctx context.Context, dbops DBTX, item *domain.OrderItem) error {
	query := `INSERT INTO order_items (order_id, product_id, quantity, total)
              VALUES ($1, $2, $3, $4) RETURNING id`

	err := dbops.QueryRowContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.Total).
		Scan(&item.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			logger.Error("InsertOrderItem: foreign key violation", err, map[string]interface{}{"product_id": item.ProductID})
			return ErrInvalidOrderItem
		}
		logger.Error("InsertOrderItem: failed to insert order item", err, map[string]interface{}{"product_id": item.ProductID})
		return err
	}
	return nil
}

func (r *postgresOrderRepository) UpdateOrderTotal(ctx context.Context, dbops DBTX, orderID int64, total decimal.Decimal) error {
	query := `UPDATE orders SET total = $1 WHERE id = $2`
	res, err := dbops.ExecContext(ctx, query, total, orderID)
	if err != nil {
		logger.Error("UpdateOrderTotal: exec failed", err, map[string]interface{}{"order_id": orderID})
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT id, customer_email, total, order_date FROM orders ORDER BY order_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListOrders: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerEmail, &o.Total, &o.OrderDate); err != nil {
			logger.Error("ListOrders: scan failed", err, nil)
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	query := `SELECT id, customer_email, total, order_date FROM orders WHERE id = $1`
	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&o.ID, &o.CustomerEmail, &o.Total, &o.OrderDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		logger.Error("GetOrderByID: query failed", err, map[string]interface{}{"order_id": orderID})
		return nil, err
	}
	return &o, nil
}

// ListOrderItemsWithProducts membaca item beserta atribut produk SAAT INI
// (LEFT JOIN, live). item.total tetap snapshot dari waktu order; kolom
// product_* bisa berubah mengikuti katalog, atau NULL jika produk dihapus.
func (r *postgresOrderRepository) ListOrderItemsWithProducts(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.total,
                     p.product_name, p.product_price, p.product_image
              FROM order_items oi
              LEFT JOIN products p ON oi.product_id = p.id
              WHERE oi.order_id = $1
              ORDER BY oi.id ASC`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		logger.Error("ListOrderItemsWithProducts: query failed", err, map[string]interface{}{"order_id": orderID})
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var i domain.OrderItem
		var name, image sql.NullString
		var price decimal.NullDecimal
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.Total, &name, &price, &image); err != nil {
			logger.Error("ListOrderItemsWithProducts: scan failed", err, nil)
			return nil, err
		}
		if name.Valid {
			i.ProductName = &name.String
		}
		if price.Valid {
			i.ProductPrice = &price.Decimal
		}
		if image.Valid {
			i.ProductImage = &image.String
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
