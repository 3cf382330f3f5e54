package client

// Route describes a navigable view and its access requirements.
type Route struct {
	Name string
	Path string
	// RequiresAuth routes redirect unauthenticated sessions to login.
	RequiresAuth bool
	// RequiresAdmin routes additionally require the admin role.
	RequiresAdmin bool
	// RequiresStaff routes accept staff or admin.
	RequiresStaff bool
	// PublicOnly routes (login) redirect authenticated sessions home.
	PublicOnly bool
}

// Route names used as redirect targets.
const (
	RouteHome  = "home"
	RouteLogin = "login"
)

// DefaultRoutes returns the application's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteHome, Path: "/", RequiresAuth: true},
		{Name: RouteLogin, Path: "/login", PublicOnly: true},
		{Name: "scanner", Path: "/qrcode", RequiresAuth: true},
		{Name: "history", Path: "/qrcode/history", RequiresAuth: true},
		{Name: "admin-events", Path: "/admin/events", RequiresAuth: true, RequiresAdmin: true},
		{Name: "admin-users", Path: "/admin/user", RequiresAuth: true, RequiresAdmin: true},
		{Name: "admin-tickets", Path: "/admin/ticket", RequiresAuth: true, RequiresStaff: true},
	}
}
