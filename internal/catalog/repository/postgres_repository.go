package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq" // Untuk pq.Error
	"github.com/ridloal/go-shop-server/internal/catalog/domain"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// DBTX adalah interface yang bisa berupa *sql.DB atau *sql.Tx.
// Method pricing/stock menerimanya supaya pembacaan harga ikut transaksi order.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// Dipakai order service di dalam transaksinya sendiri
	GetProductPricing(ctx context.Context, dbops DBTX, productID int64) (*domain.ProductPricing, error)
	DecrementStock(ctx context.Context, dbops DBTX, productID int64, quantity int) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, product_name, product_category, product_description, product_price, product_stock, product_image`

func scanProduct(row interface{ Scan(...interface{}) error }, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.Stock, &p.Image)
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			logger.Error("ListProducts: scan failed", err, nil)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err, nil)
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p domain.Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err, map[string]interface{}{"product_id": id})
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT product_category FROM products ORDER BY product_category ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListCategories: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			logger.Error("ListCategories: scan failed", err, nil)
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_category = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		logger.Error("ListProductsByCategory: query failed", err, map[string]interface{}{"category": category})
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			logger.Error("ListProductsByCategory: scan failed", err, nil)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProductPricing membaca harga otoritatif saat ini lewat dbops milik caller,
// sehingga pembacaan ikut isolasi transaksi order. Produk yang tidak ada
// dikembalikan sebagai ErrProductNotFound eksplisit, bukan dibiarkan nil.
func (r *postgresProductRepository) GetProductPricing(ctx context.Context, dbops DBTX, productID int64) (*domain.ProductPricing, error) {
	query := `SELECT id, product_name, product_price, product_image FROM products WHERE id = $1`
	var p domain.ProductPricing
	err := dbops.QueryRowContext(ctx, query, productID).Scan(&p.ID, &p.Name, &p.Price, &p.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductPricing: query failed", err, map[string]interface{}{"product_id": productID})
		return nil, err
	}
	return &p, nil
}

// DecrementStock mengurangi stok di dalam transaksi order. Guard pada WHERE
// memastikan stok tidak pernah negatif; nol baris berarti stok kurang.
func (r *postgresProductRepository) DecrementStock(ctx context.Context, dbops DBTX, productID int64, quantity int) error {
	query := `UPDATE products SET product_stock = product_stock - $1
              WHERE id = $2 AND product_stock >= $1`
	res, err := dbops.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation
			logger.Error("DecrementStock: check violation", err, map[string]interface{}{"product_id": productID})
			return ErrInsufficientStock
		}
		logger.Error("DecrementStock: exec failed", err, map[string]interface{}{"product_id": productID})
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrInsufficientStock // atau produk tidak ada; pricing lookup sudah memvalidasi id
	}
	return nil
}
