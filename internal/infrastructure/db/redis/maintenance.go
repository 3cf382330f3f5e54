package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

const maintenanceKey = "maintenance:settings"

// MaintenanceStore persists maintenance-mode settings as JSON in Redis.
type MaintenanceStore struct {
	client *redis.Client
}

func NewMaintenanceStore(client *redis.Client) *MaintenanceStore {
	return &MaintenanceStore{client: client}
}

// Load returns the stored settings, or (nil, nil) when none were saved yet.
func (m *MaintenanceStore) Load(ctx context.Context) (*domain.MaintenanceSettings, error) {
	raw, err := m.client.Get(ctx, maintenanceKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load maintenance settings: %w", err)
	}

	var settings domain.MaintenanceSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("decode maintenance settings: %w", err)
	}
	return &settings, nil
}

func (m *MaintenanceStore) Save(ctx context.Context, s domain.MaintenanceSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode maintenance settings: %w", err)
	}
	if err := m.client.Set(ctx, maintenanceKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save maintenance settings: %w", err)
	}
	return nil
}
