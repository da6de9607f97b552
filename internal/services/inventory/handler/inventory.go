package handler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"syntra-pos/internal/database/models"
	"syntra-pos/internal/store"
)

var ErrNegativeCount = fmt.Errorf("%w: counted quantity must not be negative", models.ErrValidation)

type ReconciliationResult struct {
	Checked  int                   `json:"checked"`
	Adjusted int                   `json:"adjusted"`
	Entries  []models.InventoryLog `json:"entries"`
	Unknown  []string              `json:"unknown,omitempty"`
}

type InventoryHandler struct {
	store    *store.Store
	products store.Collection[models.Product]
	logs     store.Collection[models.InventoryLog]
	now      func() time.Time
}

func NewInventoryHandler(s *store.Store) *InventoryHandler {
	return &InventoryHandler{
		store:    s,
		products: store.NewCollection[models.Product](s, store.Products),
		logs:     store.NewCollection[models.InventoryLog](s, store.InventoryLogs),
		now:      time.Now,
	}
}

// SubmitInventory overwrites system stock with the counted quantities and appends one log
// entry per product whose count differs. Products missing from counts keep their stock.
func (s *InventoryHandler) SubmitInventory(ctx context.Context, counts Counts) (ReconciliationResult, error) {
	for key, n := range counts {
		if n < 0 {
			return ReconciliationResult{}, fmt.Errorf("%w (product %s)", ErrNegativeCount, key)
		}
	}

	unlock := s.store.Lock(store.Products, store.InventoryLogs)
	defer unlock()

	products, err := s.products.All(ctx)
	if err != nil {
		return ReconciliationResult{}, err
	}

	timestamp := models.FormatTimestamp(s.now())
	result := ReconciliationResult{Entries: []models.InventoryLog{}}
	matched := make(map[string]bool, len(counts))

	for i, p := range products {
		key := strconv.Itoa(p.ID)
		actual, ok := counts[key]
		if ok {
			matched[key] = true
		} else {
			actual = p.Stock
		}

		if diff := actual - p.Stock; diff != 0 {
			result.Entries = append(result.Entries, models.InventoryLog{
				ProductID:   p.ID,
				ProductName: p.Name,
				SystemQty:   p.Stock,
				ActualQty:   actual,
				Diff:        diff,
				Timestamp:   timestamp,
			})
		}
		products[i].Stock = actual
		result.Checked++
	}
	result.Adjusted = len(result.Entries)

	for key := range counts {
		if !matched[key] {
			result.Unknown = append(result.Unknown, key)
		}
	}
	sort.Strings(result.Unknown)

	if err := s.products.Put(ctx, products); err != nil {
		return ReconciliationResult{}, err
	}

	if len(result.Entries) > 0 {
		history, err := s.logs.All(ctx)
		if err != nil {
			return ReconciliationResult{}, err
		}
		if err := s.logs.Put(ctx, append(history, result.Entries...)); err != nil {
			return ReconciliationResult{}, err
		}
	}

	log.Printf("Inventory count: %d product(s) checked, %d adjusted", result.Checked, result.Adjusted)
	if len(result.Unknown) > 0 {
		log.Printf("WARN: inventory count referenced unknown product id(s) %v", result.Unknown)
	}
	return result, nil
}

func (s *InventoryHandler) ListLogs(ctx context.Context) ([]models.InventoryLog, error) {
	return s.logs.All(ctx)
}

// StockReport flags products at or below threshold.
func (s *InventoryHandler) StockReport(ctx context.Context, threshold int) ([]models.StockReportRow, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.StockReportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, models.StockReportRow{Product: p, Low: p.Stock <= threshold})
	}
	return rows, nil
}
