package dto

import (
	"github.com/shopspring/decimal"
)

type DashboardStatsResponse struct {
	TotalDeals       int             `json:"total_deals"`
	TotalBrokerage   decimal.Decimal `json:"total_brokerage"`
	PendingBrokerage decimal.Decimal `json:"pending_brokerage"`
}

// Alert kinds.
const (
	AlertNoRecentDeals   = "no_recent_deals"
	AlertOverduePayments = "overdue_payments"
)

type Alert struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	// Count is days idle for no_recent_deals and deal count for overdue_payments.
	Count int `json:"count"`
}
