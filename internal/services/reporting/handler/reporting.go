package handler

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/tealeg/xlsx"

	"syntra-pos/internal/database/models"
	"syntra-pos/internal/store"
)

const (
	SalesSheet       = "Doanh thu"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	salesFilePattern = "doanh_thu_%s.xlsx"
)

var salesHeaders = []string{"ID Đơn", "Thời gian", "Khách hàng", "SĐT", "Tổng tiền"}

func SalesFilename(t time.Time) string {
	return fmt.Sprintf(salesFilePattern, t.Format("20060102"))
}

type ReportingHandler struct {
	orders store.Collection[models.Order]
}

func NewReportingHandler(s *store.Store) *ReportingHandler {
	return &ReportingHandler{
		orders: store.NewCollection[models.Order](s, store.Orders),
	}
}

// SalesWorkbook builds one row per recorded order, in the order they were placed.
func (s *ReportingHandler) SalesWorkbook(ctx context.Context) (*xlsx.File, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SalesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range salesHeaders {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(o.ID)
		row.AddCell().SetString(o.Timestamp)
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.CustomerPhone)
		row.AddCell().SetFloat(o.Total.InexactFloat64())
	}

	return file, nil
}

func (s *ReportingHandler) ExportSales(ctx context.Context, w io.Writer) error {
	file, err := s.SalesWorkbook(ctx)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	log.Printf("Sales export written: %d order(s)", len(file.Sheet[SalesSheet].Rows)-1)
	return nil
}
