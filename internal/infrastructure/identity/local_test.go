package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

func createLocalUser(t *testing.T, l *Local, email, password string) *domain.Identity {
	t.Helper()
	identity, err := l.Create(context.Background(), ports.CreateIdentityInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return identity
}

func TestLocal_SignInAndResolve(t *testing.T) {
	l := NewLocal("test-secret")
	created := createLocalUser(t, l, "jane@example.com", "s3cretpass")

	token, identity, err := l.SignIn(context.Background(), "jane@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if identity.ID != created.ID {
		t.Fatalf("identity mismatch")
	}

	resolved, err := l.ResolveToken(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != created.ID || resolved.Email != "jane@example.com" {
		t.Fatalf("unexpected identity: %+v", resolved)
	}
}

func TestLocal_SignInWrongPassword(t *testing.T) {
	l := NewLocal("test-secret")
	createLocalUser(t, l, "jane@example.com", "s3cretpass")

	if _, _, err := l.SignIn(context.Background(), "jane@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLocal_ResolveGarbageToken(t *testing.T) {
	l := NewLocal("test-secret")

	if _, err := l.ResolveToken(context.Background(), "not-a-jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLocal_ResolveTokenSignedWithOtherSecret(t *testing.T) {
	issuer := NewLocal("secret-a")
	createLocalUser(t, issuer, "jane@example.com", "s3cretpass")
	token, _, err := issuer.SignIn(context.Background(), "jane@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}

	verifier := NewLocal("secret-b")
	if _, err := verifier.ResolveToken(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLocal_DeletedUserTokenRejected(t *testing.T) {
	l := NewLocal("test-secret")
	created := createLocalUser(t, l, "jane@example.com", "s3cretpass")
	token, _, err := l.SignIn(context.Background(), "jane@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}

	if err := l.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := l.ResolveToken(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("token of a deleted user must be rejected, got %v", err)
	}
}

func TestLocal_DuplicateEmail(t *testing.T) {
	l := NewLocal("test-secret")
	createLocalUser(t, l, "jane@example.com", "s3cretpass")

	_, err := l.Create(context.Background(), ports.CreateIdentityInput{
		Email:    "jane@example.com",
		Password: "other",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLocal_UpdateEmailAndPassword(t *testing.T) {
	l := NewLocal("test-secret")
	created := createLocalUser(t, l, "old@example.com", "s3cretpass")

	newEmail := "new@example.com"
	newPassword := "newpass123"
	if err := l.Update(context.Background(), created.ID, ports.UpdateIdentityInput{
		Email:    &newEmail,
		Password: &newPassword,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, _, err := l.SignIn(context.Background(), "new@example.com", "newpass123"); err != nil {
		t.Fatalf("sign in with new credentials failed: %v", err)
	}
	if _, _, err := l.SignIn(context.Background(), "new@example.com", "s3cretpass"); err == nil {
		t.Fatalf("old password must stop working")
	}
}

func TestLocal_GenerateRecoveryLink(t *testing.T) {
	l := NewLocal("test-secret")
	createLocalUser(t, l, "jane@example.com", "s3cretpass")

	link, err := l.GenerateRecoveryLink(context.Background(), "jane@example.com", "https://app.example.com/reset-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://app.example.com/reset-password?token_hash=") {
		t.Fatalf("unexpected link shape: %s", link)
	}
	if !strings.HasSuffix(link, "&type=recovery") {
		t.Fatalf("unexpected link shape: %s", link)
	}
}

func TestLocal_RecoveryLinkUnknownEmail(t *testing.T) {
	l := NewLocal("test-secret")

	_, err := l.GenerateRecoveryLink(context.Background(), "ghost@example.com", "https://x")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
