package models

// InventoryLog records one discrepancy found during a stock count.
type InventoryLog struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	SystemQty   int    `json:"system_qty"`
	ActualQty   int    `json:"actual_qty"`
	Diff        int    `json:"diff"`
	Timestamp   string `json:"timestamp"`
}

type StockReportRow struct {
	Product
	Low bool `json:"low"`
}
