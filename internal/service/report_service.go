package service

import (
	"context"

	"brokerbook/internal/dto"
	"brokerbook/internal/model"
	"brokerbook/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	DealReport(ctx context.Context, filter dto.ReportFilter) (*dto.DealReportResponse, error)
}

type reportService struct {
	deals     repository.DealRepository
	suppliers repository.SupplierRepository
	buyers    repository.BuyerRepository
}

func NewReportService(
	deals repository.DealRepository,
	suppliers repository.SupplierRepository,
	buyers repository.BuyerRepository,
) ReportService {
	return &reportService{deals: deals, suppliers: suppliers, buyers: buyers}
}

func (s *reportService) DealReport(ctx context.Context, filter dto.ReportFilter) (*dto.DealReportResponse, error) {
	fe := fieldErrors{}
	rng := parseRange(fe, "start_date", filter.StartDate, "end_date", filter.EndDate)
	if err := fe.err(); err != nil {
		return nil, err
	}

	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, err
	}
	sups, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	buys, err := s.buyers.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := newNameIndex(sups, buys)

	resp := &dto.DealReportResponse{
		Totals: dto.ReportTotals{
			TotalAmount:    decimal.Zero,
			TotalBrokerage: decimal.Zero,
			TotalGST:       decimal.Zero,
		},
	}
	for _, d := range deals {
		v := idx.dealView(d)
		if !rng.contains(d.ConfirmationDate) {
			continue
		}
		if filter.Supplier != "" && !containsFold(v.SupplierName, filter.Supplier) {
			continue
		}
		if filter.Buyer != "" && !containsFold(v.BuyerName, filter.Buyer) {
			continue
		}
		if filter.Status != "" && string(d.PaymentStatus) != filter.Status {
			continue
		}
		resp.Deals = append(resp.Deals, v)
		resp.Totals.TotalAmount = resp.Totals.TotalAmount.Add(d.TotalAmount)
		resp.Totals.TotalBrokerage = resp.Totals.TotalBrokerage.Add(d.BrokerageAmount)
		resp.Totals.TotalGST = resp.Totals.TotalGST.Add(d.GSTAmount)
	}
	resp.Totals.TotalDeals = len(resp.Deals)
	if resp.Deals == nil {
		resp.Deals = []model.DealView{}
	}
	return resp, nil
}
