package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brokerbook/internal/dto"
	"brokerbook/internal/ledger"
	"brokerbook/internal/model"
	"brokerbook/internal/repository"

	"github.com/rs/zerolog/log"
)

type DeliveryService interface {
	GetDeliverySummary(ctx context.Context, dealID int64) (*ledger.Summary, error)
	RecordDelivery(ctx context.Context, req dto.RecordDeliveryRequest) (*dto.RecordDeliveryResponse, error)
	ListDeliveries(ctx context.Context, filter dto.DeliveryFilter) ([]model.DeliveryView, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status model.PaymentStatus) error
	DeleteDelivery(ctx context.Context, id int64) error
}

type deliveryService struct {
	deliveries repository.DeliveryRepository
	deals      repository.DealRepository
	suppliers  repository.SupplierRepository
	buyers     repository.BuyerRepository
}

func NewDeliveryService(
	deliveries repository.DeliveryRepository,
	deals repository.DealRepository,
	suppliers repository.SupplierRepository,
	buyers repository.BuyerRepository,
) DeliveryService {
	return &deliveryService{deliveries: deliveries, deals: deals, suppliers: suppliers, buyers: buyers}
}

// GetDeliverySummary never fails on a missing deal: it reconciles against an
// ordered quantity of zero and reports DealFound=false.
func (s *deliveryService) GetDeliverySummary(ctx context.Context, dealID int64) (*ledger.Summary, error) {
	deal := model.Deal{ID: dealID}
	found := true
	d, err := s.deals.FindByID(ctx, dealID)
	switch {
	case err == nil:
		deal = *d
	case errors.Is(err, repository.ErrNotFound):
		found = false
	default:
		return nil, err
	}

	own, err := s.deliveries.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	summary := ledger.Summarize(deal, own)
	summary.DealFound = found
	return &summary, nil
}

func (s *deliveryService) RecordDelivery(ctx context.Context, req dto.RecordDeliveryRequest) (*dto.RecordDeliveryResponse, error) {
	fe := fieldErrors{}
	if req.DealID <= 0 {
		fe.add("deal_id", "required")
	}
	if !req.BagsDelivered.IsPositive() {
		fe.add("bags_delivered", "must be greater than 0")
	}
	if req.GSTPercent != nil && req.GSTPercent.IsNegative() {
		fe.add("gst_percent", "must not be negative")
	}
	payment := model.PaymentStatus(req.PaymentStatus)
	if payment != "" && !payment.Valid() {
		fe.add("payment_status", "must be one of Pending, Paid")
	}
	date := parseDate(fe, "delivery_date", req.DeliveryDate, today())
	if err := fe.err(); err != nil {
		return nil, err
	}

	deal, err := s.deals.FindByID(ctx, req.DealID)
	if err != nil {
		return nil, fmt.Errorf("deal %d: %w", req.DealID, err)
	}
	existing, err := s.deliveries.ListByDeal(ctx, deal.ID)
	if err != nil {
		return nil, err
	}

	plan, err := ledger.PlanDelivery(*deal, existing, ledger.DeliveryInput{
		BagsDelivered: req.BagsDelivered,
		GSTPercent:    req.GSTPercent,
		Confirmed:     req.Confirmed,
		PaymentStatus: payment,
	})
	if err != nil {
		return nil, err
	}

	dv := plan.NewDelivery(deal.ID)
	dv.DeliveryDate = date
	dv.BillNumber = strings.TrimSpace(req.BillNumber)
	if err := s.deliveries.Create(ctx, &dv); err != nil {
		return nil, err
	}
	log.Info().
		Int64("delivery_id", dv.ID).
		Int64("deal_id", deal.ID).
		Str("bags", dv.BagsDelivered.String()).
		Str("remaining", plan.RemainingAfter.String()).
		Msg("delivery recorded")
	if plan.Warning != ledger.WarningNone {
		log.Info().
			Int64("delivery_id", dv.ID).
			Int64("deal_id", deal.ID).
			Str("warning", string(plan.Warning)).
			Str("remaining", plan.RemainingAfter.String()).
			Msg("over-delivery confirmed")
	}

	status := deal.PaymentStatus
	if plan.CompletesDeal {
		// The transition is decided against the stored status, so a status set
		// since the deal was read (e.g. Paid) is never downgraded. The delivery
		// is already stored; a failed status write is logged, not returned.
		next, changed, err := s.deals.MarkDelivered(ctx, deal.ID)
		switch {
		case err != nil:
			log.Warn().Err(err).Int64("deal_id", deal.ID).Msg("failed to mark deal delivered")
		case changed:
			status = next
			log.Info().Int64("deal_id", deal.ID).Msg("deal marked delivered")
		default:
			status = next
		}
	}

	return &dto.RecordDeliveryResponse{
		ID:            dv.ID,
		Warning:       string(plan.Warning),
		RemainingBags: plan.RemainingAfter,
		DealStatus:    string(status),
	}, nil
}

func (s *deliveryService) ListDeliveries(ctx context.Context, filter dto.DeliveryFilter) ([]model.DeliveryView, error) {
	fe := fieldErrors{}
	rng := parseRange(fe, "date_from", filter.DateFrom, "date_to", filter.DateTo)
	if err := fe.err(); err != nil {
		return nil, err
	}

	deliveries, err := s.deliveries.List(ctx)
	if err != nil {
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
	byID := make(map[int64]model.Deal, len(deals))
	for _, d := range deals {
		byID[d.ID] = d
	}

	out := make([]model.DeliveryView, 0, len(deliveries))
	for _, dv := range deliveries {
		if filter.DealID != 0 && dv.DealID != filter.DealID {
			continue
		}
		if filter.Status != "" && string(dv.PaymentStatus) != filter.Status {
			continue
		}
		if !rng.contains(dv.DeliveryDate) {
			continue
		}
		v := model.DeliveryView{
			Delivery:     dv,
			SupplierName: model.UnknownName,
			BuyerName:    model.UnknownName,
			ProductName:  model.UnknownName,
		}
		if d, ok := byID[dv.DealID]; ok {
			v.SupplierName = idx.supplier(d.SupplierID)
			v.BuyerName = idx.buyer(d.BuyerID)
			if d.ProductName != "" {
				v.ProductName = d.ProductName
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *deliveryService) UpdateDeliveryStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	if !status.Valid() {
		return &ValidationError{Fields: map[string]string{"status": "must be one of Pending, Paid"}}
	}
	if err := s.deliveries.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	log.Info().Int64("delivery_id", id).Str("status", string(status)).Msg("delivery status updated")
	return nil
}

// DeleteDelivery removes the record only. A deal already marked Delivered
// keeps that status even if it is now under-delivered.
func (s *deliveryService) DeleteDelivery(ctx context.Context, id int64) error {
	if err := s.deliveries.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("delivery_id", id).Msg("delivery deleted")
	return nil
}
