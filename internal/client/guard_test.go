package client

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

func sessionWithRole(role domain.Role) Session {
	return Session{
		Identity:        &domain.Identity{ID: "id-1"},
		Profile:         &domain.Profile{ID: "id-1", Role: role, IsActive: true},
		IsAuthenticated: true,
		IsAdmin:         role == domain.RoleAdmin,
	}
}

func findRoute(t *testing.T, name string) Route {
	t.Helper()
	for _, r := range DefaultRoutes() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("route %q not in table", name)
	return Route{}
}

func TestCanEnter_UnauthenticatedToProtected(t *testing.T) {
	g := NewGuard(nil)

	d := g.CanEnter(findRoute(t, RouteHome), Session{})
	if d.Allowed || d.RedirectTo != RouteLogin {
		t.Fatalf("expected redirect to login, got %+v", d)
	}
}

func TestCanEnter_AuthenticatedToLogin(t *testing.T) {
	g := NewGuard(nil)

	d := g.CanEnter(findRoute(t, RouteLogin), sessionWithRole(domain.RoleUser))
	if d.Allowed || d.RedirectTo != RouteHome {
		t.Fatalf("expected redirect home, got %+v", d)
	}
}

func TestCanEnter_UnauthenticatedToLogin(t *testing.T) {
	g := NewGuard(nil)

	if d := g.CanEnter(findRoute(t, RouteLogin), Session{}); !d.Allowed {
		t.Fatalf("login must be reachable when signed out, got %+v", d)
	}
}

func TestCanEnter_NonAdminToAdminRoute(t *testing.T) {
	g := NewGuard(nil)

	d := g.CanEnter(findRoute(t, "admin-users"), sessionWithRole(domain.RoleUser))
	if d.Allowed || d.RedirectTo != RouteHome {
		t.Fatalf("expected redirect home, got %+v", d)
	}
}

func TestCanEnter_AdminToAdminRoute(t *testing.T) {
	g := NewGuard(nil)

	if d := g.CanEnter(findRoute(t, "admin-users"), sessionWithRole(domain.RoleAdmin)); !d.Allowed {
		t.Fatalf("admin should pass, got %+v", d)
	}
}

func TestCanEnter_StaffRouteAcceptsStaffAndAdmin(t *testing.T) {
	g := NewGuard(nil)
	route := findRoute(t, "admin-tickets")

	if d := g.CanEnter(route, sessionWithRole(domain.RoleStaff)); !d.Allowed {
		t.Fatalf("staff should pass, got %+v", d)
	}
	if d := g.CanEnter(route, sessionWithRole(domain.RoleAdmin)); !d.Allowed {
		t.Fatalf("admin should pass, got %+v", d)
	}
	if d := g.CanEnter(route, sessionWithRole(domain.RoleUser)); d.Allowed {
		t.Fatalf("regular user must not pass")
	}
}

func TestCanEnter_SessionWithoutProfileIsNotAdmin(t *testing.T) {
	g := NewGuard(nil)
	session := Session{
		Identity:        &domain.Identity{ID: "id-1"},
		IsAuthenticated: true,
	}

	d := g.CanEnter(findRoute(t, "admin-users"), session)
	if d.Allowed || d.RedirectTo != RouteHome {
		t.Fatalf("missing profile must not grant admin, got %+v", d)
	}
}

func TestCheck_TransientFailureRedirectsToLogin(t *testing.T) {
	storage := NewStorage()
	storage.Set(KeySessionToken, "tok-1")
	m := NewManager(
		&stubAuth{resolveErr: domain.ErrVerificationFailed},
		&stubProfiles{},
		storage, zerolog.Nop(),
	)
	g := NewGuard(m)

	d := g.Check(context.Background(), findRoute(t, RouteHome))
	if d.Allowed || d.RedirectTo != RouteLogin {
		t.Fatalf("verification outage must fail closed to login, got %+v", d)
	}
}

func TestCheck_ValidTokenAllowsProtectedRoute(t *testing.T) {
	storage := NewStorage()
	storage.Set(KeySessionToken, "tok-1")
	m := NewManager(
		&stubAuth{identity: adminIdentity()},
		&stubProfiles{profile: adminProfile()},
		storage, zerolog.Nop(),
	)
	g := NewGuard(m)

	if d := g.Check(context.Background(), findRoute(t, "admin-users")); !d.Allowed {
		t.Fatalf("expected access, got %+v", d)
	}
}
