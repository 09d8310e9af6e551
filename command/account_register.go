package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

// AccountRegisterInput captures a self-registration request.
type AccountRegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Result   *types.Session
}

// Type implements gocommand.Message.
func (AccountRegisterInput) Type() string {
	return "command.account.register"
}

// Validate implements gocommand.Message.
func (input AccountRegisterInput) Validate() error {
	return input.draft().validate()
}

func (input AccountRegisterInput) draft() accountDraft {
	return accountDraft{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
	}
}

// AccountRegisterCommand creates user accounts through the public signup
// flow and issues their first access token.
type AccountRegisterCommand struct {
	repo   types.AccountRepository
	hasher types.PasswordHasher
	tokens types.TokenIssuer
	gate   featuregate.FeatureGate
	logger types.Logger
}

// AccountRegisterCommandConfig wires dependencies for the register command.
type AccountRegisterCommandConfig struct {
	Repository  types.AccountRepository
	Hasher      types.PasswordHasher
	Tokens      types.TokenIssuer
	FeatureGate featuregate.FeatureGate
	Logger      types.Logger
}

// NewAccountRegisterCommand constructs the register handler.
func NewAccountRegisterCommand(cfg AccountRegisterCommandConfig) *AccountRegisterCommand {
	return &AccountRegisterCommand{
		repo:   cfg.Repository,
		hasher: cfg.Hasher,
		tokens: cfg.Tokens,
		gate:   cfg.FeatureGate,
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AccountRegisterInput] = (*AccountRegisterCommand)(nil)

// Execute registers the account. Self-registered accounts always receive the
// user role.
func (c *AccountRegisterCommand) Execute(ctx context.Context, input AccountRegisterInput) error {
	switch {
	case c.repo == nil:
		return types.ErrMissingAccountRepository
	case c.hasher == nil:
		return types.ErrMissingPasswordHasher
	case c.tokens == nil:
		return ErrMissingTokenIssuer
	}

	enabled, err := featureEnabled(ctx, c.gate, featuregate.FeatureUsersSignup, uuid.Nil)
	if err != nil {
		return surfaceError(c.logger, "signup gate", err)
	}
	if !enabled {
		return types.Forbidden(msgSignupDisabled)
	}

	if err := input.Validate(); err != nil {
		return err
	}

	hash, err := c.hasher.Hash(input.Password)
	if err != nil {
		return surfaceError(c.logger, "password hash", err)
	}

	created, err := c.repo.CreateAccount(ctx, input.draft().account(hash, types.RoleUser, true))
	if err != nil {
		return surfaceError(c.logger, "account register", err)
	}

	token, err := c.tokens.Issue(ctx, *created)
	if err != nil {
		return surfaceError(c.logger, "token issue", err)
	}

	c.logger.Info("go-contacts: account registered", "account_id", created.ID)

	if input.Result != nil {
		*input.Result = types.Session{Account: *created, AccessToken: token}
	}
	return nil
}
