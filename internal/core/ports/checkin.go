package ports

import (
	"context"
	"time"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// CheckinInput is the DTO passed from the transport layer to CheckinService.
type CheckinInput struct {
	TicketCode string
	EventID    string
	ScannedBy  string
	ScannedAt  time.Time
}

// ListCheckinsFilter carries query parameters for the scan history view.
type ListCheckinsFilter struct {
	EventID string // optional
	Page    int    // 1-based
	Limit   int    // capped at 100 by the service
}

// CheckinService processes ticket scans coming off the dispatcher.
type CheckinService interface {
	Process(ctx context.Context, in CheckinInput) error
	History(ctx context.Context, filter ListCheckinsFilter) ([]*domain.CheckIn, int64, error)
}

// CheckinStore persists check-in records.
type CheckinStore interface {
	Insert(ctx context.Context, ci *domain.CheckIn) error
	List(ctx context.Context, filter ListCheckinsFilter) ([]*domain.CheckIn, int64, error)
}
