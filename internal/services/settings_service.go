package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
)

type SettingsService struct {
	store  *store.Store
	remote *remote.Client
	log    zerolog.Logger
}

func NewSettingsService(st *store.Store, rc *remote.Client) *SettingsService {
	return &SettingsService{
		store:  st,
		remote: rc,
		log:    logger.WithComponent("settings"),
	}
}

// Get always returns a settings value; the singleton is defaulted on load
// and can never be deleted.
func (s *SettingsService) Get() models.AgencySettings {
	return s.store.Snapshot().Settings
}

func (s *SettingsService) Update(ctx context.Context, next models.AgencySettings) (models.AgencySettings, error) {
	if next.ExchangeRate <= 0 {
		return models.AgencySettings{}, fmt.Errorf("%w: exchange rate must be positive", ErrInvalid)
	}
	if next.Name == "" {
		return models.AgencySettings{}, fmt.Errorf("%w: agency name is required", ErrInvalid)
	}
	if next.Services == nil {
		next.Services = []models.AgencyService{}
	}
	if next.QuotationTerms == nil {
		next.QuotationTerms = []string{}
	}

	if s.remote != nil {
		fromServer, err := s.remote.UpdateSettings(ctx, next)
		if err != nil {
			return models.AgencySettings{}, err
		}
		next = fromServer
	}

	s.store.Update(func(d models.AppData) models.AppData {
		d.Settings = next
		return d
	})
	s.log.Info().Float64("exchangeRate", next.ExchangeRate).Msg("settings updated")
	return next, nil
}
