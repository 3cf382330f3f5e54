package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const admissionTTL = 24 * time.Hour

// AdmissionChecker tracks which tickets were already admitted, backed by Redis.
// Key format: admitted:<event_id>:<ticket_code>
type AdmissionChecker struct {
	client *redis.Client
}

// NewAdmissionChecker creates an AdmissionChecker wrapping the given Redis client.
func NewAdmissionChecker(client *redis.Client) *AdmissionChecker {
	return &AdmissionChecker{client: client}
}

// IsDuplicate reports whether this ticket was already admitted for the event.
func (a *AdmissionChecker) IsDuplicate(ctx context.Context, ticketCode, eventID string) (bool, error) {
	n, err := a.client.Exists(ctx, a.key(ticketCode, eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("admission check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this ticket was admitted (expires after admissionTTL).
func (a *AdmissionChecker) Mark(ctx context.Context, ticketCode, eventID string) error {
	return a.client.Set(ctx, a.key(ticketCode, eventID), "1", admissionTTL).Err()
}

func (a *AdmissionChecker) key(ticketCode, eventID string) string {
	return fmt.Sprintf("admitted:%s:%s", eventID, ticketCode)
}
