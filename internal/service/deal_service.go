package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brokerbook/internal/calc"
	"brokerbook/internal/dto"
	"brokerbook/internal/ledger"
	"brokerbook/internal/model"
	"brokerbook/internal/repository"

	"github.com/rs/zerolog/log"
)

type DealService interface {
	ListDeals(ctx context.Context, filter dto.DealFilter) ([]model.DealView, error)
	GetDeal(ctx context.Context, id int64) (*model.DealView, error)
	CreateDeal(ctx context.Context, req dto.CreateDealRequest) (*dto.CreatedResponse, error)
	PreviewDeal(ctx context.Context, terms dto.DealTerms) (*calc.Breakdown, error)
	UpdateDealStatus(ctx context.Context, id int64, status model.DealStatus) error
	DeleteDeal(ctx context.Context, id int64) error
}

type dealService struct {
	deals      repository.DealRepository
	deliveries repository.DeliveryRepository
	suppliers  repository.SupplierRepository
	buyers     repository.BuyerRepository
	// cascadeDelete also removes a deal's deliveries on DeleteDeal.
	cascadeDelete bool
}

func NewDealService(
	deals repository.DealRepository,
	deliveries repository.DeliveryRepository,
	suppliers repository.SupplierRepository,
	buyers repository.BuyerRepository,
	cascadeDelete bool,
) DealService {
	return &dealService{
		deals:         deals,
		deliveries:    deliveries,
		suppliers:     suppliers,
		buyers:        buyers,
		cascadeDelete: cascadeDelete,
	}
}

func (s *dealService) names(ctx context.Context) (nameIndex, error) {
	sups, err := s.suppliers.List(ctx)
	if err != nil {
		return nameIndex{}, err
	}
	buys, err := s.buyers.List(ctx)
	if err != nil {
		return nameIndex{}, err
	}
	return newNameIndex(sups, buys), nil
}

func (s *dealService) ListDeals(ctx context.Context, filter dto.DealFilter) ([]model.DealView, error) {
	fe := fieldErrors{}
	rng := parseRange(fe, "date_from", filter.DateFrom, "date_to", filter.DateTo)
	if err := fe.err(); err != nil {
		return nil, err
	}

	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := s.names(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.DealView, 0, len(deals))
	for _, d := range deals {
		v := idx.dealView(d)
		if filter.Status != "" && string(d.PaymentStatus) != filter.Status {
			continue
		}
		if filter.Search != "" && !containsFold(d.ProductName, filter.Search) &&
			!containsFold(v.SupplierName, filter.Search) && !containsFold(v.BuyerName, filter.Search) {
			continue
		}
		if !rng.contains(d.ConfirmationDate) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *dealService) GetDeal(ctx context.Context, id int64) (*model.DealView, error) {
	d, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	idx, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	v := idx.dealView(*d)
	return &v, nil
}

// termsConfig applies defaults to the pricing terms and checks the enums.
func termsConfig(fe fieldErrors, t dto.DealTerms) (calc.Config, model.Unit) {
	mode := model.CalcPerKg
	if t.CalculationMode != "" {
		mode = model.CalculationMode(t.CalculationMode)
		if !mode.Valid() {
			fe.add("calculation_mode", "must be one of per_kg, direct")
		}
	}
	brokerage := model.BrokeragePercentage
	if t.BrokerageMode != "" {
		brokerage = model.BrokerageMode(t.BrokerageMode)
		if !brokerage.Valid() {
			fe.add("brokerage_mode", "must be one of percentage, per_bag")
		}
	}
	unit := model.UnitBags
	if t.Unit != "" {
		unit = model.Unit(t.Unit)
		if !unit.Valid() {
			fe.add("unit", "must be one of bags, kg, tons")
		}
	}
	if t.Rate.IsNegative() {
		fe.add("rate", "must not be negative")
	}
	if t.Quantity.IsNegative() {
		fe.add("quantity", "must not be negative")
	}

	return calc.Config{
		CalculationMode:  mode,
		Rate:             t.Rate,
		KgPerUnit:        calc.OrDefault(t.KgPerUnit, calc.DefaultKgPerUnit),
		DiscountPercent:  calc.OrZero(t.DiscountPercent),
		GSTPercent:       calc.OrDefault(t.GSTPercent, calc.DefaultGSTPercent),
		BrokerageMode:    brokerage,
		BrokeragePercent: calc.OrDefault(t.BrokeragePercent, calc.DefaultBrokeragePercent),
		BrokeragePerBag:  calc.OrZero(t.BrokeragePerBag),
	}, unit
}

func (s *dealService) PreviewDeal(_ context.Context, terms dto.DealTerms) (*calc.Breakdown, error) {
	fe := fieldErrors{}
	cfg, _ := termsConfig(fe, terms)
	if err := fe.err(); err != nil {
		return nil, err
	}
	b := calc.Compute(cfg, terms.Quantity, nil)
	return &b, nil
}

func (s *dealService) CreateDeal(ctx context.Context, req dto.CreateDealRequest) (*dto.CreatedResponse, error) {
	fe := fieldErrors{}
	if req.SupplierID <= 0 {
		fe.add("supplier_id", "required")
	}
	if req.BuyerID <= 0 {
		fe.add("buyer_id", "required")
	}
	product := strings.TrimSpace(req.ProductName)
	if product == "" {
		fe.add("product_name", "required")
	}
	if !req.Rate.IsPositive() {
		fe.add("rate", "must be greater than 0")
	}
	if !req.Quantity.IsPositive() {
		fe.add("quantity", "must be greater than 0")
	}
	cfg, unit := termsConfig(fe, req.DealTerms)
	confirmed := parseDate(fe, "confirmation_date", req.ConfirmationDate, today())
	if err := fe.err(); err != nil {
		return nil, err
	}

	if err := s.requireParties(ctx, req.SupplierID, req.BuyerID); err != nil {
		return nil, err
	}

	deal := &model.Deal{
		SupplierID:       req.SupplierID,
		BuyerID:          req.BuyerID,
		ProductName:      product,
		ConfirmationDate: confirmed,
		CalculationMode:  cfg.CalculationMode,
		Rate:             cfg.Rate,
		Quantity:         req.Quantity,
		Unit:             unit,
		KgPerUnit:        cfg.KgPerUnit,
		DiscountPercent:  cfg.DiscountPercent,
		GSTPercent:       cfg.GSTPercent,
		BrokerageMode:    cfg.BrokerageMode,
		BrokeragePercent: cfg.BrokeragePercent,
		BrokeragePerBag:  cfg.BrokeragePerBag,
		PaymentStatus:    model.DealPending,
	}
	calc.Apply(deal, calc.Compute(cfg, req.Quantity, nil))

	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}
	log.Info().
		Int64("deal_id", deal.ID).
		Str("product", deal.ProductName).
		Str("total_amount", deal.TotalAmount.String()).
		Str("brokerage", deal.BrokerageAmount.String()).
		Msg("deal created")
	return &dto.CreatedResponse{ID: deal.ID}, nil
}

// requireParties fails validation when either party id does not resolve.
func (s *dealService) requireParties(ctx context.Context, supplierID, buyerID int64) error {
	fe := fieldErrors{}
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		fe.add("supplier_id", "supplier does not exist")
	}
	if _, err := s.buyers.FindByID(ctx, buyerID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		fe.add("buyer_id", "buyer does not exist")
	}
	return fe.err()
}

func (s *dealService) UpdateDealStatus(ctx context.Context, id int64, status model.DealStatus) error {
	d, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return err
	}
	next, err := ledger.SetStatus(d.PaymentStatus, status)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"status": "must be one of Pending, Delivered, Paid"}}
	}
	if err := s.deals.UpdateStatus(ctx, id, next); err != nil {
		return err
	}
	log.Info().Int64("deal_id", id).Str("from", string(d.PaymentStatus)).Str("to", string(next)).Msg("deal status updated")
	return nil
}

func (s *dealService) DeleteDeal(ctx context.Context, id int64) error {
	if err := s.deals.Delete(ctx, id); err != nil {
		return err
	}
	removed := 0
	if s.cascadeDelete {
		n, err := s.deliveries.DeleteByDeal(ctx, id)
		if err != nil {
			return fmt.Errorf("delete deliveries of deal %d: %w", id, err)
		}
		removed = n
	}
	log.Info().Int64("deal_id", id).Bool("cascade", s.cascadeDelete).Int("deliveries_deleted", removed).Msg("deal deleted")
	return nil
}
