package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/api/metrics"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// DedupChecker abstracts the admitted-ticket store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, ticketCode, eventID string) (bool, error)
	Mark(ctx context.Context, ticketCode, eventID string) error
}

type checkinService struct {
	store ports.CheckinStore
	dedup DedupChecker
	log   zerolog.Logger
}

// NewCheckinService returns a CheckinService implementation.
func NewCheckinService(store ports.CheckinStore, dedup DedupChecker, log zerolog.Logger) ports.CheckinService {
	return &checkinService{store: store, dedup: dedup, log: log}
}

// Process deduplicates and persists a single ticket scan. A repeat scan is
// still recorded (the history view shows rejected entries) but flagged as a
// duplicate so the gate refuses admission.
func (s *checkinService) Process(ctx context.Context, in ports.CheckinInput) error {
	start := time.Now()

	isDup, err := s.dedup.IsDuplicate(ctx, in.TicketCode, in.EventID)
	if err != nil {
		s.log.Warn().Err(err).Str("ticket", in.TicketCode).Msg("dedup check failed, treating scan as first admission")
		isDup = false
	}

	if !isDup {
		if markErr := s.dedup.Mark(ctx, in.TicketCode, in.EventID); markErr != nil {
			s.log.Warn().Err(markErr).Str("ticket", in.TicketCode).Msg("failed to set admission key")
		}
	}

	scannedAt := in.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now().UTC()
	}

	checkin := &domain.CheckIn{
		ID:         uuid.NewString(),
		TicketCode: in.TicketCode,
		EventID:    in.EventID,
		ScannedBy:  in.ScannedBy,
		ScannedAt:  scannedAt,
		Duplicate:  isDup,
	}
	if err := s.store.Insert(ctx, checkin); err != nil {
		metrics.CheckinsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process checkin: %w", err)
	}

	result := "admitted"
	if isDup {
		result = "duplicate"
	}
	metrics.CheckinsProcessedTotal.WithLabelValues(result).Inc()
	metrics.CheckinProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("ticket", in.TicketCode).
		Str("event_id", in.EventID).
		Bool("duplicate", isDup).
		Msg("checkin processed")

	return nil
}

// History returns a page of recorded scans.
func (s *checkinService) History(ctx context.Context, filter ports.ListCheckinsFilter) ([]*domain.CheckIn, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	return s.store.List(ctx, filter)
}
