package service

import (
	"context"
	"strings"

	"brokerbook/internal/dto"
	"brokerbook/internal/model"
	"brokerbook/internal/repository"

	"github.com/rs/zerolog/log"
)

type PartyService interface {
	CreateSupplier(ctx context.Context, req dto.CreatePartyRequest) (*dto.CreatedResponse, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateBuyer(ctx context.Context, req dto.CreatePartyRequest) (*dto.CreatedResponse, error)
	ListBuyers(ctx context.Context) ([]model.Buyer, error)
}

type partyService struct {
	suppliers repository.SupplierRepository
	buyers    repository.BuyerRepository
}

func NewPartyService(suppliers repository.SupplierRepository, buyers repository.BuyerRepository) PartyService {
	return &partyService{suppliers: suppliers, buyers: buyers}
}

func validateParty(req dto.CreatePartyRequest) (name, contact string, err error) {
	fe := fieldErrors{}
	name = strings.TrimSpace(req.Name)
	if name == "" {
		fe.add("name", "required")
	}
	return name, strings.TrimSpace(req.Contact), fe.err()
}

func (s *partyService) CreateSupplier(ctx context.Context, req dto.CreatePartyRequest) (*dto.CreatedResponse, error) {
	name, contact, err := validateParty(req)
	if err != nil {
		return nil, err
	}
	sup := &model.Supplier{Name: name, Contact: contact}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	log.Info().Int64("supplier_id", sup.ID).Str("name", sup.Name).Msg("supplier created")
	return &dto.CreatedResponse{ID: sup.ID}, nil
}

func (s *partyService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *partyService) CreateBuyer(ctx context.Context, req dto.CreatePartyRequest) (*dto.CreatedResponse, error) {
	name, contact, err := validateParty(req)
	if err != nil {
		return nil, err
	}
	b := &model.Buyer{Name: name, Contact: contact}
	if err := s.buyers.Create(ctx, b); err != nil {
		return nil, err
	}
	log.Info().Int64("buyer_id", b.ID).Str("name", b.Name).Msg("buyer created")
	return &dto.CreatedResponse{ID: b.ID}, nil
}

func (s *partyService) ListBuyers(ctx context.Context) ([]model.Buyer, error) {
	return s.buyers.List(ctx)
}
