package domain

// MaintenanceSettings controls the application-wide maintenance gate.
// The stored copy is authoritative; clients cache it only as advisory state.
type MaintenanceSettings struct {
	Enabled          bool   `json:"enabled"`
	Message          string `json:"message"`
	EstimatedTime    string `json:"estimated_time"`
	ContactEmail     string `json:"contact_email"`
	AllowAdminAccess bool   `json:"allow_admin_access"`
}
