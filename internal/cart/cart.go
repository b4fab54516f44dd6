// Package cart memusatkan aritmetika keranjang yang sebelumnya diduplikasi
// di dua varian front-end dengan semantik update yang sedikit berbeda.
// Server tidak memakainya saat runtime (keranjang hidup di client); paket ini
// adalah satu implementasi rujukan yang jadi acuan kedua client.
package cart

import (
	"github.com/shopspring/decimal"
)

// Item adalah satu baris keranjang: produk plus quantity lokal.
type Item struct {
	ProductID int64
	UnitPrice decimal.Decimal
	Quantity  int
}

// ApplyDelta menerapkan perubahan quantity pada keranjang dan mengembalikan
// keranjang baru. Invariant: quantity selalu di-clamp minimum nol, dan baris
// ber-quantity nol dihapus. Baris baru ditambahkan di akhir; urutan baris
// lain tidak berubah.
func ApplyDelta(items []Item, productID int64, unitPrice decimal.Decimal, delta int) []Item {
	out := make([]Item, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
			continue
		}
		found = true
		qty := it.Quantity + delta
		if qty <= 0 {
			continue // clamp ke nol berarti baris hilang
		}
		it.Quantity = qty
		out = append(out, it)
	}
	if !found && delta > 0 {
		out = append(out, Item{ProductID: productID, UnitPrice: unitPrice, Quantity: delta})
	}
	return out
}

// Total menghitung total lokal keranjang. Nilai ini hanya untuk display:
// server selalu menghitung ulang dari harga katalog saat submit order.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}

// Count mengembalikan jumlah unit di keranjang (badge di icon cart).
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
