package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/export"
	"github.com/mamadbah2/autotrade/internal/service/reporting"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportBuilder builds reconciliation reports.
type ReportBuilder interface {
	BuildReport(ctx context.Context, r models.ReportRange) (*models.Report, error)
}

// ReportHandler exposes the reconciliation report as JSON and as files.
type ReportHandler struct {
	svc      ReportBuilder
	location *time.Location
	logger   *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc ReportBuilder, loc *time.Location, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{svc: svc, location: loc, logger: logger}
}

// Get handles GET /api/reports?type=daily|monthly|custom.
func (h *ReportHandler) Get(c *gin.Context) {
	report, ok := h.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export handles GET /api/reports/export?format=pdf|xlsx with the same range
// parameters as Get.
func (h *ReportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "pdf")
	if format != "pdf" && format != "xlsx" {
		respondError(c, h.logger, fmt.Errorf("unknown export format %q: %w", format, models.ErrInvalidInput))
		return
	}

	report, ok := h.build(c)
	if !ok {
		return
	}

	day := report.Range.Start.Format("2006-01-02")
	var (
		doc         []byte
		contentType string
		err         error
	)
	switch format {
	case "xlsx":
		doc, err = export.XLSX(report)
		contentType = contentTypeXLSX
	default:
		doc, err = export.PDF(report, "Report "+day)
		contentType = contentTypePDF
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.%s"`, day, format))
	c.Data(http.StatusOK, contentType, doc)
}

func (h *ReportHandler) build(c *gin.Context) (*models.Report, bool) {
	r, err := reporting.ParseRange(reporting.RangeQuery{
		Type:  c.Query("type"),
		Date:  c.Query("date"),
		Month: c.Query("month"),
		Year:  c.Query("year"),
		From:  c.Query("from"),
		To:    c.Query("to"),
	}, h.location)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}

	report, err := h.svc.BuildReport(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return report, true
}
