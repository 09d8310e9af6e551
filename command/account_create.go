package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
)

// AccountCreateInput captures an admin provisioned account. IsActive defaults
// to true when nil.
type AccountCreateInput struct {
	Actor    types.ActorRef
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
	IsActive *bool
	Result   *types.Account
}

// Type implements gocommand.Message.
func (AccountCreateInput) Type() string {
	return "command.account.create"
}

// Validate implements gocommand.Message.
func (input AccountCreateInput) Validate() error {
	if err := requireAdmin(input.Actor); err != nil {
		return err
	}
	return input.draft().validate()
}

func (input AccountCreateInput) draft() accountDraft {
	return accountDraft{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
		Role:     input.Role,
	}
}

// AccountCreateCommand lets admins create accounts with any role.
type AccountCreateCommand struct {
	repo   types.AccountRepository
	hasher types.PasswordHasher
	logger types.Logger
}

// AccountCreateCommandConfig wires dependencies for the create command.
type AccountCreateCommandConfig struct {
	Repository types.AccountRepository
	Hasher     types.PasswordHasher
	Logger     types.Logger
}

// NewAccountCreateCommand constructs the admin create handler.
func NewAccountCreateCommand(cfg AccountCreateCommandConfig) *AccountCreateCommand {
	return &AccountCreateCommand{
		repo:   cfg.Repository,
		hasher: cfg.Hasher,
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AccountCreateInput] = (*AccountCreateCommand)(nil)

// Execute hashes the password and persists the account.
func (c *AccountCreateCommand) Execute(ctx context.Context, input AccountCreateInput) error {
	switch {
	case c.repo == nil:
		return types.ErrMissingAccountRepository
	case c.hasher == nil:
		return types.ErrMissingPasswordHasher
	}
	if err := input.Validate(); err != nil {
		return err
	}

	hash, err := c.hasher.Hash(input.Password)
	if err != nil {
		return surfaceError(c.logger, "password hash", err)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	draft := input.draft()
	created, err := c.repo.CreateAccount(ctx, draft.account(hash, draft.normalized().Role, active))
	if err != nil {
		return surfaceError(c.logger, "account create", err)
	}

	c.logger.Info("go-contacts: account created",
		"account_id", created.ID,
		"role", created.Role,
		"actor_id", input.Actor.ID,
	)

	if input.Result != nil {
		*input.Result = *created
	}
	return nil
}
