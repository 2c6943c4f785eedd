package service

import (
	"context"
	"fmt"
	"time"

	"brokerbook/internal/dto"
	"brokerbook/internal/model"
	"brokerbook/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	idleDealDays       = 7
	overduePaymentDays = 30
)

type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	Alerts(ctx context.Context, now time.Time) ([]dto.Alert, error)
}

type dashboardService struct {
	deals repository.DealRepository
}

func NewDashboardService(deals repository.DealRepository) DashboardService {
	return &dashboardService{deals: deals}
}

// Stats: pending brokerage sums the brokerage of deals still in Pending.
func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardStatsResponse{
		TotalDeals:       len(deals),
		TotalBrokerage:   decimal.Zero,
		PendingBrokerage: decimal.Zero,
	}
	for _, d := range deals {
		resp.TotalBrokerage = resp.TotalBrokerage.Add(d.BrokerageAmount)
		if d.PaymentStatus == model.DealPending {
			resp.PendingBrokerage = resp.PendingBrokerage.Add(d.BrokerageAmount)
		}
	}
	return resp, nil
}

func (s *dashboardService) Alerts(ctx context.Context, now time.Time) ([]dto.Alert, error) {
	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, err
	}
	alerts := []dto.Alert{}
	if len(deals) == 0 {
		return alerts, nil
	}

	newest := deals[0].CreatedAt
	overdue := 0
	for _, d := range deals {
		if d.CreatedAt.After(newest) {
			newest = d.CreatedAt
		}
		if d.PaymentStatus != model.DealPaid && daysBetween(d.ConfirmationDate, now) >= overduePaymentDays {
			overdue++
		}
	}

	if idle := daysBetween(newest, now); idle >= idleDealDays {
		alerts = append(alerts, dto.Alert{
			Kind:    dto.AlertNoRecentDeals,
			Message: fmt.Sprintf("No new deals for %d days", idle),
			Count:   idle,
		})
	}
	if overdue > 0 {
		alerts = append(alerts, dto.Alert{
			Kind:    dto.AlertOverduePayments,
			Message: fmt.Sprintf("%d overdue payments (%d+ days)", overdue, overduePaymentDays),
			Count:   overdue,
		})
	}
	return alerts, nil
}

// daysBetween counts whole elapsed days from then to now, floored.
func daysBetween(then, now time.Time) int {
	return int(now.Sub(then) / (24 * time.Hour))
}
