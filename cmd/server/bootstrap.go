package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
	"github.com/ghsm/ticketing-admin/internal/core/service"
	"github.com/ghsm/ticketing-admin/internal/infrastructure/config"
)

// bootstrapAdmin seeds the initial admin account so a fresh deployment is
// immediately operable. Idempotent: if a profile already exists for the
// configured admin email, nothing happens.
func bootstrapAdmin(ctx context.Context, identities ports.IdentityStore, profiles ports.ProfileStore, cfg config.IdentityConfig, log zerolog.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	if _, err := profiles.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("bootstrap admin lookup: %w", err)
	}

	password := cfg.AdminPassword
	generated := false
	if password == "" {
		var err error
		password, err = generatePassword(24)
		if err != nil {
			return err
		}
		generated = true
	}

	admins := service.NewAdminUserService(identities, profiles, "", log)
	_, err := admins.CreateUser(ctx, ports.CreateUserInput{
		Email:       cfg.AdminEmail,
		Password:    password,
		DisplayName: "Administrator",
		Role:        domain.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("bootstrap admin create: %w", err)
	}

	if generated {
		log.Warn().Str("email", cfg.AdminEmail).Str("password", password).
			Msg("initial admin created with a generated password, change it after first sign-in")
	} else {
		log.Info().Str("email", cfg.AdminEmail).Msg("initial admin created")
	}
	return nil
}

func generatePassword(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
