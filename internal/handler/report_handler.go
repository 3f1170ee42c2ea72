package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resaletrack/internal/domain"
	"resaletrack/internal/reportexport"
	"resaletrack/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler. now dates export filenames.
func NewReportHandler(reportService service.ReportService, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{reportService: reportService, now: now}
}

// parseReportRequest reads report parameters from the query string. It never
// fails: unknown ranges, malformed dates and non-numeric top_n fall back to
// defaults downstream.
func parseReportRequest(c *gin.Context) domain.ReportRequest {
	req := domain.ReportRequest{
		RangeKey: c.Query("range"),
		Start:    c.Query("start"),
		End:      c.Query("end"),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("top_n"))); err == nil {
		req.TopN = n
	}
	return req
}

// Profitability handles GET /api/v1/reports/profitability
// @Summary Profitability report
// @Description KPIs, per-category and per-source breakdowns and the most profitable sales for a date range. Unknown ranges fall back to all; custom bounds are YYYY-MM-DD and swapped when reversed; top_n is clamped to 5..10.
// @Tags reports
// @Produce json
// @Param range query string false "all, 30d, 90d, this_month, last_month, this_year, last_year, custom" default(all)
// @Param start query string false "Custom range start (YYYY-MM-DD)"
// @Param end query string false "Custom range end (YYYY-MM-DD)"
// @Param top_n query int false "Number of top items (5-10)"
// @Success 200 {object} Response{data=domain.Report}
// @Failure 503 {object} ErrorResponseBody "Item data unavailable"
// @Router /reports/profitability [get]
func (h *ReportHandler) Profitability(c *gin.Context) {
	report, err := h.reportService.Generate(c.Request.Context(), parseReportRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ExportProfitability handles GET /api/v1/reports/profitability/export
// @Summary Export profitability report
// @Description The same report as an XLSX workbook with Summary, Categories, Sources and Top Items sheets.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param range query string false "Range key" default(all)
// @Param start query string false "Custom range start (YYYY-MM-DD)"
// @Param end query string false "Custom range end (YYYY-MM-DD)"
// @Param top_n query int false "Number of top items (5-10)"
// @Success 200 {file} file
// @Failure 503 {object} ErrorResponseBody "Item data unavailable"
// @Router /reports/profitability/export [get]
func (h *ReportHandler) ExportProfitability(c *gin.Context) {
	report, err := h.reportService.Generate(c.Request.Context(), parseReportRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reportexport.WriteWorkbook(&buf, report); err != nil {
		HandleError(c, err)
		return
	}

	filename := reportexport.Filename(report.Range.Key, h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, reportexport.ContentType, buf.Bytes())
}
