package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	reporting "syntra-pos/internal/services/reporting/handler"
)

type ReportingHTTPHandler struct {
	reporting *reporting.ReportingHandler
	now       func() time.Time
}

func NewReportingHTTPHandler(reportingService *reporting.ReportingHandler) *ReportingHTTPHandler {
	return &ReportingHTTPHandler{
		reporting: reportingService,
		now:       time.Now,
	}
}

// ExportSales buffers the workbook so a failure can still be answered with a 500.
func (h *ReportingHTTPHandler) ExportSales(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reporting.ExportSales(c.Request.Context(), &buf); err != nil {
		pageError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+reporting.SalesFilename(h.now())+`"`)
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, reporting.XLSXContentType, buf.Bytes())
}
