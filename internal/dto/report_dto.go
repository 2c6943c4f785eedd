package dto

import (
	"brokerbook/internal/model"

	"github.com/shopspring/decimal"
)

// ReportFilter mirrors the report screen: confirmation date range, case-insensitive
// supplier/buyer name substrings and an exact status.
type ReportFilter struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Supplier  string `form:"supplier"`
	Buyer     string `form:"buyer"`
	Status    string `form:"status"`
}

type ReportTotals struct {
	TotalDeals     int             `json:"total_deals"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalBrokerage decimal.Decimal `json:"total_brokerage"`
	TotalGST       decimal.Decimal `json:"total_gst"`
}

type DealReportResponse struct {
	Deals  []model.DealView `json:"deals"`
	Totals ReportTotals     `json:"totals"`
}
