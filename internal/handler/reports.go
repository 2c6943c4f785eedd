package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"brokerbook/internal/dto"
	"brokerbook/internal/infra"
	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct{ svc service.ReportService }

func NewReportHandler(svc service.ReportService) *ReportHandler { return &ReportHandler{svc: svc} }

// Deals godoc
// @Summary Filtered deal report with totals
// @Tags reports
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param supplier query string false "Supplier name substring"
// @Param buyer query string false "Buyer name substring"
// @Param status query string false "Pending | Delivered | Paid"
// @Success 200 {object} dto.DealReportResponse
// @Router /v1/reports/deals [get]
func (h *ReportHandler) Deals(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.DealReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DealsXLSX godoc
// @Summary Download the filtered deal report as a spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param supplier query string false "Supplier name substring"
// @Param buyer query string false "Buyer name substring"
// @Param status query string false "Pending | Delivered | Paid"
// @Success 200 {file} binary
// @Router /v1/reports/deals.xlsx [get]
func (h *ReportHandler) DealsXLSX(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	report, err := h.svc.DealReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := infra.WriteDealReportXLSX(&buf, report); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("deals_report_%s.xlsx", time.Now().Format(dto.DateLayout))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
