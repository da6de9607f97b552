package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pos "syntra-pos/internal/services/pos/handler"
)

type POSHTTPHandler struct {
	pos *pos.POSHandler
}

func NewPOSHTTPHandler(posService *pos.POSHandler) *POSHTTPHandler {
	return &POSHTTPHandler{
		pos: posService,
	}
}

// --- Views ---

func (h *POSHTTPHandler) OrdersPage(c *gin.Context) {
	orders, err := h.pos.ListOrders(c.Request.Context())
	if err != nil {
		pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "orders.html", gin.H{"Title": "Đơn hàng", "Orders": orders})
}

func (h *POSHTTPHandler) OrderPage(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.pos.GetOrder(c.Request.Context(), id)
	if err != nil {
		pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "order.html", gin.H{"Title": "Hóa đơn #" + c.Param("id"), "Order": order})
}

// --- Mutations ---

func (h *POSHTTPHandler) CreateOrder(c *gin.Context) {
	var req pos.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	order, err := h.pos.CreateOrder(c.Request.Context(), req)
	if err != nil {
		var oos *pos.OutOfStockError
		switch {
		case errors.As(err, &oos):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Hết hàng: " + oos.ProductName})
		case errors.Is(err, pos.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Giỏ hàng trống"})
		default:
			legacyError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
		"total":    order.Total,
	})
}

// --- JSON API ---

func (h *POSHTTPHandler) ListOrders(c *gin.Context) {
	orders, err := h.pos.ListOrders(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Orders retrieved", orders, ListMeta{Count: len(orders)}))
}

func (h *POSHTTPHandler) GetOrder(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid order ID"))
		return
	}

	order, err := h.pos.GetOrder(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Order retrieved", order))
}

func (h *POSHTTPHandler) ListCustomers(c *gin.Context) {
	customers, err := h.pos.ListCustomers(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Customers retrieved", customers, ListMeta{Count: len(customers)}))
}
