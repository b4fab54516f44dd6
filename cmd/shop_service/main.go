package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogAPI "github.com/ridloal/go-shop-server/internal/catalog/api"
	catalogRepo "github.com/ridloal/go-shop-server/internal/catalog/repository"
	catalogService "github.com/ridloal/go-shop-server/internal/catalog/service"
	orderAPI "github.com/ridloal/go-shop-server/internal/order/api"
	orderRepo "github.com/ridloal/go-shop-server/internal/order/repository"
	orderService "github.com/ridloal/go-shop-server/internal/order/service"
	"github.com/ridloal/go-shop-server/internal/platform/config"
	"github.com/ridloal/go-shop-server/internal/platform/database"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
	"github.com/ridloal/go-shop-server/internal/platform/metrics"
	"github.com/ridloal/go-shop-server/internal/platform/middleware"
)

func main() {
	// Load Config
	dbCfg := config.LoadShopDBConfig()
	serverCfg := config.LoadServerConfig("5001") // Shop service default port 5001

	logger.Info("Starting Shop Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Shop Service", err, nil)
		return
	}
	defer db.Close()

	// Setup Dependencies
	productRepository := catalogRepo.NewPostgresProductRepository(db)
	catalogSvc := catalogService.NewCatalogService(productRepository)
	catalogHandler := catalogAPI.NewCatalogHandler(catalogSvc)

	orderRepository := orderRepo.NewPostgresOrderRepository(db)
	// Repo katalog juga berperan sebagai price reader transaksi order
	ordSvc := orderService.NewOrderService(orderRepository, productRepository)
	orderHandler := orderAPI.NewOrderHandler(ordSvc)

	// Setup Gin Router
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.Middleware())
	router.Use(gin.Recovery())

	root := router.Group("")
	catalogHandler.RegisterRoutes(root)
	orderHandler.RegisterRoutes(root)

	router.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	logger.Info("Shop Service running on port " + serverCfg.Port)
	if errSrv := router.Run(serverCfg.Port); errSrv != nil {
		logger.Error("Failed to run Shop Service server", errSrv, nil)
	}
}
