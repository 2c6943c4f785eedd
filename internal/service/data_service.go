package service

import (
	"context"

	"brokerbook/internal/dto"

	"github.com/rs/zerolog/log"
)

// Resetter wipes every collection and counter.
type Resetter interface {
	Reset(ctx context.Context) error
}

type DataService interface {
	ResetAllData(ctx context.Context, confirmation string) error
}

type dataService struct {
	store Resetter
}

func NewDataService(store Resetter) DataService {
	return &dataService{store: store}
}

// ResetAllData clears suppliers, buyers, deals, deliveries and id counters.
// confirmation must equal dto.ResetConfirmationPhrase exactly.
func (s *dataService) ResetAllData(ctx context.Context, confirmation string) error {
	if confirmation != dto.ResetConfirmationPhrase {
		return &ValidationError{Fields: map[string]string{
			"confirmation": `type "` + dto.ResetConfirmationPhrase + `" exactly to confirm`,
		}}
	}
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	log.Warn().Msg("all data reset")
	return nil
}
