package ports

import (
	"context"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// MaintenanceStore persists the maintenance-mode settings.
type MaintenanceStore interface {
	// Load returns the stored settings, or (nil, nil) when none were saved yet.
	Load(ctx context.Context) (*domain.MaintenanceSettings, error)
	Save(ctx context.Context, s domain.MaintenanceSettings) error
}

// MaintenanceService reads and updates the maintenance gate.
type MaintenanceService interface {
	Settings(ctx context.Context) (domain.MaintenanceSettings, error)
	Update(ctx context.Context, s domain.MaintenanceSettings) (domain.MaintenanceSettings, error)
}
