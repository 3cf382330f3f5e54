package domain

import "time"

// CheckIn records a single QR ticket scan at an event entrance.
type CheckIn struct {
	ID         string    `json:"id"`
	TicketCode string    `json:"ticket_code"`
	EventID    string    `json:"event_id"`
	ScannedBy  string    `json:"scanned_by"` // profile id of the staff member
	ScannedAt  time.Time `json:"scanned_at"`
	// Duplicate is true when the same ticket was already admitted for the
	// same event; the scan is recorded but the gate should reject entry.
	Duplicate bool `json:"duplicate"`
}
