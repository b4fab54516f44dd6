package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            int64           `json:"id"`
	CustomerEmail string          `json:"customer_email"`
	Total         decimal.Decimal `json:"total"` // derived: jumlah total semua item
	OrderDate     time.Time       `json:"order_date"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"-"` // sudah ada di Order, tidak perlu di JSON item
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"` // snapshot: harga satuan saat order x quantity

	// Enrichment display-only dari katalog; nil jika produk sudah dihapus.
	ProductName  *string          `json:"product_name,omitempty"`
	ProductPrice *decimal.Decimal `json:"product_price,omitempty"`
	ProductImage *string          `json:"product_image,omitempty"`
}

type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// Request pembuatan order: body POST /orders versi client
type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Email    string                   `json:"email" binding:"required,email"`
	Products []CreateOrderItemRequest `json:"products" binding:"required,dive"`
}
