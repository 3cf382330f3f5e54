package client

import (
	"context"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// Decision is the route guard's verdict: either proceed, or navigate to
// RedirectTo instead.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

var allow = Decision{Allowed: true}

func redirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// Guard decides whether a navigation may proceed, using only the locally
// cached session. It is a fast-reject UX layer running before any network
// call; the server-side gate remains the enforcement point.
type Guard struct {
	sessions *Manager
}

func NewGuard(sessions *Manager) *Guard {
	return &Guard{sessions: sessions}
}

// CanEnter applies the route's requirements to the given session snapshot.
func (g *Guard) CanEnter(route Route, session Session) Decision {
	if route.RequiresAuth && !session.IsAuthenticated {
		return redirect(RouteLogin)
	}
	if route.PublicOnly && session.IsAuthenticated {
		return redirect(RouteHome)
	}
	if route.RequiresAdmin && !hasRole(session, domain.RoleAdmin) {
		return redirect(RouteHome)
	}
	if route.RequiresStaff && !hasRole(session, domain.RoleStaff, domain.RoleAdmin) {
		return redirect(RouteHome)
	}
	return allow
}

// Check refreshes the session from the persisted token and applies CanEnter.
// Any error while resolving the session conservatively redirects to login.
func (g *Guard) Check(ctx context.Context, route Route) Decision {
	if err := g.sessions.Refresh(ctx); err != nil {
		return redirect(RouteLogin)
	}
	return g.CanEnter(route, g.sessions.Session())
}

func hasRole(session Session, roles ...domain.Role) bool {
	if session.Profile == nil {
		return false
	}
	for _, r := range roles {
		if session.Profile.Role == r {
			return true
		}
	}
	return false
}
