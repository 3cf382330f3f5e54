package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

type stubCheckinStore struct {
	inserted  []*domain.CheckIn
	insertErr error
	listed    ports.ListCheckinsFilter
}

func (s *stubCheckinStore) Insert(_ context.Context, ci *domain.CheckIn) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, ci)
	return nil
}

func (s *stubCheckinStore) List(_ context.Context, filter ports.ListCheckinsFilter) ([]*domain.CheckIn, int64, error) {
	s.listed = filter
	return s.inserted, int64(len(s.inserted)), nil
}

type stubDedup struct {
	duplicate bool
	checkErr  error
	markErr   error
	marked    []string
}

func (s *stubDedup) IsDuplicate(_ context.Context, ticketCode, eventID string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	return s.duplicate, nil
}

func (s *stubDedup) Mark(_ context.Context, ticketCode, eventID string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, eventID+"/"+ticketCode)
	return nil
}

func TestProcess_FirstScanAdmitted(t *testing.T) {
	store := &stubCheckinStore{}
	dedup := &stubDedup{}
	svc := NewCheckinService(store, dedup, zerolog.Nop())

	err := svc.Process(context.Background(), ports.CheckinInput{
		TicketCode: "TCK-1",
		EventID:    "evt-1",
		ScannedBy:  "staff-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 record, got %d", len(store.inserted))
	}
	ci := store.inserted[0]
	if ci.Duplicate {
		t.Fatalf("first scan must not be a duplicate")
	}
	if ci.ID == "" || ci.ScannedAt.IsZero() {
		t.Fatalf("id and scan time must be filled in: %+v", ci)
	}
	if len(dedup.marked) != 1 {
		t.Fatalf("admission key not set")
	}
}

func TestProcess_RepeatScanRecordedAsDuplicate(t *testing.T) {
	store := &stubCheckinStore{}
	dedup := &stubDedup{duplicate: true}
	svc := NewCheckinService(store, dedup, zerolog.Nop())

	err := svc.Process(context.Background(), ports.CheckinInput{TicketCode: "TCK-1", EventID: "evt-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.inserted) != 1 || !store.inserted[0].Duplicate {
		t.Fatalf("repeat scan must still be recorded, flagged duplicate")
	}
	if len(dedup.marked) != 0 {
		t.Fatalf("already-admitted tickets must not be re-marked")
	}
}

func TestProcess_DedupFailureTreatedAsFirstScan(t *testing.T) {
	store := &stubCheckinStore{}
	dedup := &stubDedup{checkErr: errors.New("redis down")}
	svc := NewCheckinService(store, dedup, zerolog.Nop())

	err := svc.Process(context.Background(), ports.CheckinInput{TicketCode: "TCK-1", EventID: "evt-1"})
	if err != nil {
		t.Fatalf("dedup failure must not block the scan, got %v", err)
	}
	if len(store.inserted) != 1 || store.inserted[0].Duplicate {
		t.Fatalf("scan should be recorded as a first admission")
	}
}

func TestProcess_InsertFailure(t *testing.T) {
	store := &stubCheckinStore{insertErr: errors.New("write timeout")}
	svc := NewCheckinService(store, &stubDedup{}, zerolog.Nop())

	err := svc.Process(context.Background(), ports.CheckinInput{TicketCode: "TCK-1", EventID: "evt-1"})
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestHistory_ClampsPagination(t *testing.T) {
	store := &stubCheckinStore{}
	svc := NewCheckinService(store, &stubDedup{}, zerolog.Nop())

	if _, _, err := svc.History(context.Background(), ports.ListCheckinsFilter{Page: -1, Limit: 9999}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listed.Page != 1 || store.listed.Limit != 100 {
		t.Fatalf("pagination not clamped: %+v", store.listed)
	}
}
