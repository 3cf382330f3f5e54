package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

func newTestAdminService(identities *stubIdentityStore, profiles *stubProfileStore) *AdminUserService {
	return NewAdminUserService(identities, profiles, "https://app.example.com/reset-password", zerolog.Nop())
}

func TestCreateUser_Success(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	profile, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "jane@example.com",
		Password:    "s3cretpass",
		DisplayName: "Jane Doe",
		Role:        domain.RoleStaff,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Role != domain.RoleStaff {
		t.Fatalf("expected staff role, got %q", profile.Role)
	}
	if profile.Username != "jane" {
		t.Fatalf("expected username from email local part, got %q", profile.Username)
	}
	if !profile.IsActive {
		t.Fatalf("new profiles must be active")
	}

	if len(identities.created) != 1 {
		t.Fatalf("expected 1 identity create, got %d", len(identities.created))
	}
	meta := identities.created[0].Metadata
	if meta["display_name"] != "Jane Doe" || meta["role"] != "staff" {
		t.Fatalf("identity metadata not propagated: %v", meta)
	}
	if _, ok := profiles.profiles[profile.ID]; !ok {
		t.Fatalf("profile not persisted")
	}
}

func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	profile, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "sam@example.com",
		Password:    "s3cretpass",
		DisplayName: "Sam",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Role != domain.RoleUser {
		t.Fatalf("expected default user role, got %q", profile.Role)
	}
}

func TestCreateUser_MissingFields(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "a@b.c"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateUser_UnknownRole(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "a@b.c",
		Password:    "s3cretpass",
		DisplayName: "A",
		Role:        domain.Role("superuser"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	in := ports.CreateUserInput{Email: "dup@example.com", Password: "s3cretpass", DisplayName: "Dup"}
	if _, err := svc.CreateUser(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateUser(context.Background(), in)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(profiles.profiles) != 1 {
		t.Fatalf("duplicate create must not add profiles, have %d", len(profiles.profiles))
	}
}

func TestCreateUser_ProfileFailureCompensatesIdentity(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	profiles.insertErr = errors.New("write timeout")
	svc := newTestAdminService(identities, profiles)

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "jane@example.com",
		Password:    "s3cretpass",
		DisplayName: "Jane",
	})
	if !errors.Is(err, domain.ErrProfileCreateFailed) {
		t.Fatalf("expected ErrProfileCreateFailed, got %v", err)
	}

	if len(identities.deleted) != 1 {
		t.Fatalf("expected identity compensation delete, got %v", identities.deleted)
	}
	if len(identities.users) != 0 {
		t.Fatalf("identity should have been rolled back")
	}
}

func TestCreateUser_CompensationFailureReported(t *testing.T) {
	identities := newStubIdentityStore()
	identities.deleteErr = errors.New("identity service down")
	profiles := newStubProfileStore()
	profiles.insertErr = errors.New("write timeout")
	svc := newTestAdminService(identities, profiles)

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "jane@example.com",
		Password:    "s3cretpass",
		DisplayName: "Jane",
	})

	var compErr *domain.CompensationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected CompensationError, got %v", err)
	}
	if compErr.Cause == nil || compErr.CompErr == nil {
		t.Fatalf("compensation error must carry both causes: %+v", compErr)
	}
}

func TestCreateUser_ReconcilesTriggerSeededProfile(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	// Simulate the provisioning trigger inserting a minimal row between the
	// identity create and the explicit profile insert.
	identities.onCreate = func(id *domain.Identity) {
		profiles.profiles[id.ID] = &domain.Profile{
			ID:       id.ID,
			Email:    id.Email,
			Username: "seeded",
			Role:     domain.RoleUser,
			IsActive: true,
		}
	}
	svc := newTestAdminService(identities, profiles)

	profile, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "boss@example.com",
		Password:    "s3cretpass",
		DisplayName: "Boss",
		Role:        domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Role != domain.RoleAdmin {
		t.Fatalf("explicit role must win over trigger-seeded row, got %q", profile.Role)
	}
	if profile.Username != "boss" {
		t.Fatalf("explicit username must win, got %q", profile.Username)
	}
	if len(profiles.profiles) != 1 {
		t.Fatalf("reconcile must not create a second profile")
	}
}

func TestUpdateUser_Success(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "old@example.com",
		Password:    "s3cretpass",
		DisplayName: "Old Name",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newName := "New Name"
	newRole := domain.RoleStaff
	result, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{
		DisplayName: &newName,
		Role:        &newRole,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}
	if result.Profile.DisplayName != "New Name" || result.Profile.Role != domain.RoleStaff {
		t.Fatalf("profile not updated: %+v", result.Profile)
	}
}

func TestUpdateUser_EmailChangePropagatesToIdentity(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "old@example.com",
		Password:    "s3cretpass",
		DisplayName: "User",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newEmail := "new@example.com"
	result, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{Email: &newEmail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}
	if identities.users[created.ID].Email != "new@example.com" {
		t.Fatalf("identity email not updated")
	}
}

func TestUpdateUser_IdentityEmailFailureIsWarning(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "old@example.com",
		Password:    "s3cretpass",
		DisplayName: "User",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	identities.updateErr = errors.New("identity service down")
	newEmail := "new@example.com"
	result, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{Email: &newEmail})
	if err != nil {
		t.Fatalf("partial failure must not be an error, got %v", err)
	}
	if result.Warning == "" {
		t.Fatalf("expected a stale-email warning")
	}
	if result.Profile.Email != "new@example.com" {
		t.Fatalf("profile email should still be updated, got %q", result.Profile.Email)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	name := "Nobody"
	_, err := svc.UpdateUser(context.Background(), "ghost", ports.UpdateUserInput{DisplayName: &name})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "gone@example.com",
		Password:    "s3cretpass",
		DisplayName: "Gone",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := svc.DeleteUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}
	if len(profiles.profiles) != 0 || len(identities.users) != 0 {
		t.Fatalf("both records should be gone")
	}
}

func TestDeleteUser_IdentityFailureIsWarning(t *testing.T) {
	identities := newStubIdentityStore()
	profiles := newStubProfileStore()
	svc := newTestAdminService(identities, profiles)

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "gone@example.com",
		Password:    "s3cretpass",
		DisplayName: "Gone",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	identities.deleteErr = errors.New("identity service down")
	result, err := svc.DeleteUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("partial failure must not be an error, got %v", err)
	}
	if result.Warning == "" {
		t.Fatalf("expected a lingering-credential warning")
	}
	if len(profiles.profiles) != 0 {
		t.Fatalf("profile must be gone so authorization stops immediately")
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	identities := newStubIdentityStore()
	svc := newTestAdminService(identities, newStubProfileStore())

	_, err := svc.DeleteUser(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(identities.deleted) != 0 {
		t.Fatalf("identity store must not be touched")
	}
}

func TestListUsers_ClampsPagination(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	result, err := svc.ListUsers(context.Background(), ports.ListProfilesFilter{Page: 0, Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", result.Page)
	}
	if result.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", result.Limit)
	}
}

func TestGenerateResetLink_UnknownEmail(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	_, err := svc.GenerateResetLink(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGenerateResetLink_Success(t *testing.T) {
	identities := newStubIdentityStore()
	svc := newTestAdminService(identities, newStubProfileStore())

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "jane@example.com",
		Password:    "s3cretpass",
		DisplayName: "Jane",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	link, err := svc.GenerateResetLink(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link == "" {
		t.Fatalf("expected a recovery link")
	}
}

func TestResetPassword_Success(t *testing.T) {
	identities := newStubIdentityStore()
	svc := newTestAdminService(identities, newStubProfileStore())

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:       "jane@example.com",
		Password:    "s3cretpass",
		DisplayName: "Jane",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), "jane@example.com", "newpass123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	upd, ok := identities.updates[created.ID]
	if !ok || upd.Password == nil || *upd.Password != "newpass123" {
		t.Fatalf("password update not sent to identity store")
	}
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	svc := newTestAdminService(newStubIdentityStore(), newStubProfileStore())

	err := svc.ResetPassword(context.Background(), "ghost@example.com", "newpass123")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
