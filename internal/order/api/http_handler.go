package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/go-shop-server/internal/order/domain"
	"github.com/ridloal/go-shop-server/internal/order/repository"
	"github.com/ridloal/go-shop-server/internal/order/service"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
	"github.com/ridloal/go-shop-server/internal/platform/metrics"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(os service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.GET("", h.ListOrders)
		orderRoutes.GET("/:id", h.GetOrder)
		orderRoutes.POST("", h.CreateOrder)
	}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		logger.Error("ListOrders: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}
		logger.Error("GetOrder: service error", err, map[string]interface{}{"order_id": orderID})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	resp, err := h.orderService.SubmitOrder(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrProductNotFound):
			metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock):
			metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
			logger.Error("CreateOrder Hdl: unhandled service error", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	metrics.OrdersSubmitted.WithLabelValues("created").Inc()
	c.JSON(http.StatusCreated, resp)
}
