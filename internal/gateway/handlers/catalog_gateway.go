package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalog "syntra-pos/internal/services/catalog/handler"
)

type CatalogHTTPHandler struct {
	catalog        *catalog.CatalogHandler
	maxUploadBytes int64
}

func NewCatalogHTTPHandler(catalogService *catalog.CatalogHandler, maxUploadBytes int64) *CatalogHTTPHandler {
	return &CatalogHTTPHandler{
		catalog:        catalogService,
		maxUploadBytes: maxUploadBytes,
	}
}

// --- Views ---

func (h *CatalogHTTPHandler) POSPage(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Bán hàng", "Products": products})
}

func (h *CatalogHTTPHandler) ProductsPage(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "products.html", gin.H{"Title": "Sản phẩm", "Products": products})
}

// --- Mutations ---

func (h *CatalogHTTPHandler) AddProduct(c *gin.Context) {
	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid price")
		return
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.PostForm("stock")))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid stock")
		return
	}

	_, err = h.catalog.AddProduct(c.Request.Context(), catalog.NewProduct{
		Name:  c.PostForm("name"),
		Price: price,
		Stock: stock,
	})
	if err != nil {
		pageError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *CatalogHTTPHandler) UploadCSV(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("csvfile")
	if err != nil {
		if status := statusFor(err); status == http.StatusRequestEntityTooLarge {
			c.String(status, fmt.Sprintf("CSV file exceeds %d bytes", h.maxUploadBytes))
			return
		}
		c.String(http.StatusBadRequest, "Invalid CSV")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		c.String(http.StatusBadRequest, "Invalid CSV")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		pageError(c, err)
		return
	}
	defer file.Close()

	result, err := h.catalog.ImportCSV(c.Request.Context(), file)
	if err != nil {
		pageError(c, err)
		return
	}
	log.Printf("[%s] %s imported: %d new, %d skipped", requestID(c), fileHeader.Filename, result.Imported, result.Skipped)
	c.Redirect(http.StatusSeeOther, "/products")
}

// --- JSON API ---

func (h *CatalogHTTPHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("Products retrieved", products, ListMeta{Count: len(products)}))
}

func (h *CatalogHTTPHandler) GetProduct(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid product ID"))
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Product retrieved", product))
}

func (h *CatalogHTTPHandler) GetProductByBarcode(c *gin.Context) {
	product, err := h.catalog.GetProductByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Product retrieved", product))
}

