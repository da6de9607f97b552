package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the wall-clock layout stored on orders and inventory logs.
const TimestampLayout = "2006-01-02 15:04:05"

func init() {
	// prices and totals stay JSON numbers in the stored documents
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	Barcode string          `json:"barcode"`
}

// CartLine is one line of a submitted cart; orders keep the lines as submitted.
type CartLine struct {
	ID    int             `json:"id"`
	Name  string          `json:"name,omitempty"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type Order struct {
	ID            int             `json:"id"`
	Timestamp     string          `json:"timestamp"`
	Items         []CartLine      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Barcode is the 8-digit, zero-padded form of a product id.
func Barcode(id int) string {
	return fmt.Sprintf("%08d", id)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func NextProductID(products []Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func NextOrderID(orders []Order) int {
	max := 0
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

func OrderTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
