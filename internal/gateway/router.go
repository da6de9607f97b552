// Package gateway assembles the HTTP surface of the shop: HTML views, form and JSON
// mutations used by the shop front, and a read-only JSON API.
package gateway

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"syntra-pos/internal/gateway/handlers"
	"syntra-pos/internal/gateway/middleware"
	"syntra-pos/internal/gateway/web"
	catalog "syntra-pos/internal/services/catalog/handler"
	inventory "syntra-pos/internal/services/inventory/handler"
	pos "syntra-pos/internal/services/pos/handler"
	reporting "syntra-pos/internal/services/reporting/handler"
	"syntra-pos/internal/store"
)

type Options struct {
	RateLimit         string
	MaxUploadBytes    int64
	LowStockThreshold int
}

type Services struct {
	Store     *store.Store
	Catalog   *catalog.CatalogHandler
	POS       *pos.POSHandler
	Inventory *inventory.InventoryHandler
	Reporting *reporting.ReportingHandler
}

// NewServices builds every domain service on top of one store.
func NewServices(s *store.Store, pricing pos.PricingPolicy) Services {
	return Services{
		Store:     s,
		Catalog:   catalog.NewCatalogHandler(s),
		POS:       pos.NewPOSHandler(s, pricing),
		Inventory: inventory.NewInventoryHandler(s),
		Reporting: reporting.NewReportingHandler(s),
	}
}

func NewRouter(svc Services, opts Options) (*gin.Engine, error) {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if opts.RateLimit != "" {
		limit, err := middleware.RateLimit(opts.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(limit)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	catalogHandler := handlers.NewCatalogHTTPHandler(svc.Catalog, opts.MaxUploadBytes)
	posHandler := handlers.NewPOSHTTPHandler(svc.POS)
	inventoryHandler := handlers.NewInventoryHTTPHandler(svc.Inventory, opts.LowStockThreshold)
	reportingHandler := handlers.NewReportingHTTPHandler(svc.Reporting)

	// --- Views ---
	r.GET("/", catalogHandler.POSPage)
	r.GET("/products", catalogHandler.ProductsPage)
	r.GET("/orders", posHandler.OrdersPage)
	r.GET("/order/:id", posHandler.OrderPage)
	r.GET("/stock_report", inventoryHandler.StockReportPage)
	r.GET("/inventory_check", inventoryHandler.InventoryCheckPage)

	// --- Shop front mutations ---
	r.POST("/add_product", catalogHandler.AddProduct)
	r.POST("/upload_csv", catalogHandler.UploadCSV)
	r.POST("/create_order", posHandler.CreateOrder)
	r.POST("/submit_inventory", inventoryHandler.SubmitInventory)
	r.GET("/export_sales", reportingHandler.ExportSales)

	// --- JSON API ---
	api := r.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id", catalogHandler.GetProduct)
			products.GET("/barcode/:code", catalogHandler.GetProductByBarcode)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", posHandler.ListOrders)
			orders.GET("/:id", posHandler.GetOrder)
		}

		api.GET("/customers", posHandler.ListCustomers)

		inv := api.Group("/inventory")
		{
			inv.GET("/logs", inventoryHandler.ListLogs)
			inv.GET("/stock", inventoryHandler.StockReport)
		}
	}

	r.GET("/health", handlers.HealthCheck(svc.Store.BackendName()))

	return r, nil
}
