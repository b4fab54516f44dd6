// Seeder mengisi tabel products dengan data katalog demo. Dipakai sekali
// saat setup environment dev; aman dijalankan ulang (upsert per id).
package main

import (
	"context"
	"fmt"

	"github.com/ridloal/go-shop-server/internal/platform/config"
	"github.com/ridloal/go-shop-server/internal/platform/database"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
)

type seedProduct struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       string
	Stock       int
	Image       string
}

var seedProducts = []seedProduct{
	{1, "Fjallraven Foldsack No. 1 Backpack", "men's clothing", "Your perfect pack for everyday use and walks in the forest.", "109.95", 25, "/images/81fPKd-2AYL._AC_SL1500_.jpg"},
	{2, "Mens Casual Premium Slim Fit T-Shirt", "men's clothing", "Slim-fitting style, contrast raglan long sleeve.", "22.30", 120, "/images/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg"},
	{3, "Mens Cotton Jacket", "men's clothing", "Great outerwear jacket for Spring/Autumn/Winter.", "55.99", 45, "/images/71li-ujtlUL._AC_UX679_.jpg"},
	{4, "John Hardy Legends Naga Bracelet", "jewelery", "From our Legends Collection, the Naga was inspired by the mythical water dragon.", "695.00", 6, "/images/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg"},
	{5, "Solid Gold Petite Micropave Ring", "jewelery", "Satisfaction guaranteed. Designed and sold by Hafeez Center in the United States.", "168.00", 18, "/images/61sbMiUnoGL._AC_UL640_QL65_ML3_.jpg"},
	{6, "WD 2TB Elements Portable External Hard Drive", "electronics", "USB 3.0 and USB 2.0 compatibility, fast data transfers.", "64.00", 80, "/images/61IBBVJvSDL._AC_SY879_.jpg"},
	{7, "SanDisk SSD PLUS 1TB Internal SSD", "electronics", "Easy upgrade for faster boot-up, shutdown, application load.", "109.00", 60, "/images/61U7T1koQqL._AC_SX679_.jpg"},
	{8, "Acer SB220Q 21.5 inch Full HD IPS Monitor", "electronics", "Ultra-thin IPS panel with Radeon FreeSync technology.", "599.00", 15, "/images/81QpkIctqPL._AC_SX679_.jpg"},
}

func main() {
	dbCfg := config.LoadShopDBConfig()

	logger.Info("Seeding shop catalog...")

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Seeder: failed to connect to database", err, nil)
		return
	}
	defer db.Close()

	query := `
        INSERT INTO products (id, product_name, product_category, product_description, product_price, product_stock, product_image)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            product_name = EXCLUDED.product_name,
            product_category = EXCLUDED.product_category,
            product_description = EXCLUDED.product_description,
            product_price = EXCLUDED.product_price,
            product_stock = EXCLUDED.product_stock,
            product_image = EXCLUDED.product_image`

	ctx := context.Background()
	seeded := 0
	for _, p := range seedProducts {
		if _, err := db.ExecContext(ctx, query, p.ID, p.Name, p.Category, p.Description, p.Price, p.Stock, p.Image); err != nil {
			logger.Error("Seeder: failed to upsert product", err, map[string]interface{}{"product_id": p.ID})
			return
		}
		seeded++
	}

	// Sinkronkan sequence supaya insert berikutnya tidak tabrakan dengan id eksplisit
	if _, err := db.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT MAX(id) FROM products))`); err != nil {
		logger.Error("Seeder: failed to sync products id sequence", err, nil)
		return
	}

	logger.Info(fmt.Sprintf("Seeder: %d products upserted", seeded))
}
