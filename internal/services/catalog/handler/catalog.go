package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"syntra-pos/internal/database/models"
	"syntra-pos/internal/store"
)

var importColumns = []string{"name", "price", "stock"}

type NewProduct struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Products []models.Product `json:"products"`
}

type CatalogHandler struct {
	store    *store.Store
	products store.Collection[models.Product]
}

func NewCatalogHandler(s *store.Store) *CatalogHandler {
	return &CatalogHandler{
		store:    s,
		products: store.NewCollection[models.Product](s, store.Products),
	}
}

func validateProduct(name string, price decimal.Decimal, stock int) error {
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func (s *CatalogHandler) AddProduct(ctx context.Context, req NewProduct) (models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateProduct(name, req.Price, req.Stock); err != nil {
		return models.Product{}, err
	}

	unlock := s.store.Lock(store.Products)
	defer unlock()

	products, err := s.products.All(ctx)
	if err != nil {
		return models.Product{}, err
	}

	id := models.NextProductID(products)
	product := models.Product{
		ID:      id,
		Name:    name,
		Price:   req.Price,
		Stock:   req.Stock,
		Barcode: models.Barcode(id),
	}

	if err := s.products.Put(ctx, append(products, product)); err != nil {
		return models.Product{}, err
	}

	log.Printf("Product %d %q added (barcode %s)", product.ID, product.Name, product.Barcode)
	return product, nil
}

// ImportCSV adds every row whose name is not in the catalog yet. Rows naming an existing
// product are skipped; if any other row is invalid nothing is written.
func (s *CatalogHandler) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ImportResult{}, ErrEmptyFile
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return ImportResult{}, err
	}

	unlock := s.store.Lock(store.Products)
	defer unlock()

	products, err := s.products.All(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	existing := make(map[string]bool, len(products))
	for _, p := range products {
		existing[p.Name] = true
	}
	nextID := models.NextProductID(products)

	result := ImportResult{Products: []models.Product{}}
	var rowErrs []RowError

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		line, _ := reader.FieldPos(0)

		field := func(col string) string {
			idx := columns[col]
			if idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		name := field("name")
		if existing[name] {
			result.Skipped++
			continue
		}

		price, err := decimal.NewFromString(field("price"))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Name: name, Err: fmt.Errorf("invalid price %q", field("price"))})
			continue
		}
		stock, err := strconv.Atoi(field("stock"))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Name: name, Err: fmt.Errorf("invalid stock %q", field("stock"))})
			continue
		}
		if err := validateProduct(name, price, stock); err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Name: name, Err: err})
			continue
		}

		product := models.Product{
			ID:      nextID,
			Name:    name,
			Price:   price,
			Stock:   stock,
			Barcode: models.Barcode(nextID),
		}
		nextID++
		existing[name] = true
		result.Products = append(result.Products, product)
	}

	if len(rowErrs) > 0 {
		return ImportResult{Skipped: result.Skipped, Products: []models.Product{}}, &ImportError{Rows: rowErrs}
	}

	result.Imported = len(result.Products)
	if result.Imported > 0 {
		if err := s.products.Put(ctx, append(products, result.Products...)); err != nil {
			return ImportResult{}, err
		}
	}

	log.Printf("CSV import: %d imported, %d skipped", result.Imported, result.Skipped)
	return result, nil
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", models.ErrValidation, col)
		}
	}
	return columns, nil
}

func (s *CatalogHandler) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

func (s *CatalogHandler) GetProduct(ctx context.Context, id int) (models.Product, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
}

func (s *CatalogHandler) GetProductByBarcode(ctx context.Context, code string) (models.Product, error) {
	code = strings.TrimSpace(code)
	products, err := s.products.All(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.Barcode == code {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: barcode %s", ErrProductNotFound, code)
}
