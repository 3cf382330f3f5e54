package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

type maintenanceService struct {
	store    ports.MaintenanceStore
	defaults domain.MaintenanceSettings
	log      zerolog.Logger
}

// NewMaintenanceService returns a MaintenanceService backed by store.
// defaults apply until settings are explicitly saved.
func NewMaintenanceService(store ports.MaintenanceStore, defaults domain.MaintenanceSettings, log zerolog.Logger) ports.MaintenanceService {
	return &maintenanceService{store: store, defaults: defaults, log: log}
}

func (s *maintenanceService) Settings(ctx context.Context) (domain.MaintenanceSettings, error) {
	stored, err := s.store.Load(ctx)
	if err != nil {
		return domain.MaintenanceSettings{}, fmt.Errorf("load maintenance settings: %w", err)
	}
	if stored == nil {
		return s.defaults, nil
	}
	return *stored, nil
}

func (s *maintenanceService) Update(ctx context.Context, in domain.MaintenanceSettings) (domain.MaintenanceSettings, error) {
	if in.Message == "" {
		in.Message = s.defaults.Message
	}
	if in.EstimatedTime == "" {
		in.EstimatedTime = s.defaults.EstimatedTime
	}
	if in.ContactEmail == "" {
		in.ContactEmail = s.defaults.ContactEmail
	}

	if err := s.store.Save(ctx, in); err != nil {
		return domain.MaintenanceSettings{}, fmt.Errorf("save maintenance settings: %w", err)
	}

	s.log.Info().Bool("enabled", in.Enabled).Msg("maintenance settings updated")
	return in, nil
}
