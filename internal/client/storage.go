package client

import "sync"

// Storage keys for persisted client state. All values are advisory and
// re-derivable from the server; none are trusted for security decisions.
const (
	KeyTheme              = "theme"
	KeyMaintenanceMode    = "maintenanceMode"
	KeyAdminAccessGranted = "adminAccessGranted"
	KeyUserRole           = "userRole"
	KeySessionToken       = "sessionToken"
)

// Storage is a thread-safe key-value store simulating the browser's local
// storage for the client-side session layer.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

// Get returns the stored value for key, or "" when absent.
func (s *Storage) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Storage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Storage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
