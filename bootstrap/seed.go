package bootstrap

import (
	"context"
	"strings"

	"github.com/goliatone/go-contacts/config"
	"github.com/goliatone/go-contacts/pkg/types"
)

// SeedAdmin creates the configured administrator when no account uses its
// email yet. It is a no-op without an admin email.
func SeedAdmin(ctx context.Context, repo types.AccountRepository, hasher types.PasswordHasher, cfg config.AuthConfig, logger types.Logger) error {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" {
		return nil
	}
	if _, err := repo.GetAccountByEmail(ctx, email); err == nil {
		return nil
	} else if !types.HasTextCode(err, types.TextCodeNotFound) {
		return err
	}
	if len(cfg.AdminPassword) < 8 {
		return types.InvalidArgument("admin password must be at least 8 characters")
	}
	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = "Administrator"
	}
	created, err := repo.CreateAccount(ctx, types.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         types.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return err
	}
	logger.Info("go-contacts: seeded admin account", "account_id", created.ID)
	return nil
}
