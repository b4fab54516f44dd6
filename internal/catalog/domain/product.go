package domain

import (
	"github.com/shopspring/decimal"
)

// Product mengikuti format kolom/JSON aplikasi shop (product_* field names).
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"product_name"`
	Category    string          `json:"product_category"`
	Description string          `json:"product_description"`
	Price       decimal.Decimal `json:"product_price"`
	Stock       int             `json:"product_stock"`
	Image       string          `json:"product_image"` // URL penuh atau path relatif /images/...
}

// ProductPricing adalah potongan data produk yang dibaca di dalam transaksi
// pembuatan order: harga otoritatif saat itu plus atribut display.
type ProductPricing struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Image string
}
