package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	inventory "syntra-pos/internal/services/inventory/handler"
)

type InventoryHTTPHandler struct {
	inventory         *inventory.InventoryHandler
	lowStockThreshold int
}

func NewInventoryHTTPHandler(inventoryService *inventory.InventoryHandler, lowStockThreshold int) *InventoryHTTPHandler {
	return &InventoryHTTPHandler{
		inventory:         inventoryService,
		lowStockThreshold: lowStockThreshold,
	}
}

func (h *InventoryHTTPHandler) threshold(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("threshold")); err == nil && v >= 0 {
		return v
	}
	return h.lowStockThreshold
}

// --- Views ---

func (h *InventoryHTTPHandler) StockReportPage(c *gin.Context) {
	threshold := h.threshold(c)
	rows, err := h.inventory.StockReport(c.Request.Context(), threshold)
	if err != nil {
		pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "stock_report.html", gin.H{"Title": "Báo cáo tồn kho", "Rows": rows, "Threshold": threshold})
}

func (h *InventoryHTTPHandler) InventoryCheckPage(c *gin.Context) {
	rows, err := h.inventory.StockReport(c.Request.Context(), h.lowStockThreshold)
	if err != nil {
		pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "inventory_check.html", gin.H{"Title": "Kiểm kho", "Products": rows})
}

// --- Mutations ---

func (h *InventoryHTTPHandler) SubmitInventory(c *gin.Context) {
	var counts inventory.Counts
	if err := c.ShouldBindJSON(&counts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.inventory.SubmitInventory(c.Request.Context(), counts)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"checked":  result.Checked,
		"adjusted": result.Adjusted,
		"unknown":  result.Unknown,
	})
}

// --- JSON API ---

func (h *InventoryHTTPHandler) ListLogs(c *gin.Context) {
	logs, err := h.inventory.ListLogs(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Inventory logs retrieved", logs, ListMeta{Count: len(logs)}))
}

func (h *InventoryHTTPHandler) StockReport(c *gin.Context) {
	rows, err := h.inventory.StockReport(c.Request.Context(), h.threshold(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Stock report retrieved", rows, ListMeta{Count: len(rows)}))
}
