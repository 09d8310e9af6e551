package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// AccountDeleteInput identifies the account an admin removes.
type AccountDeleteInput struct {
	Actor     types.ActorRef
	AccountID uuid.UUID
}

// Type implements gocommand.Message.
func (AccountDeleteInput) Type() string {
	return "command.account.delete"
}

// Validate implements gocommand.Message.
func (input AccountDeleteInput) Validate() error {
	if err := requireAdmin(input.Actor); err != nil {
		return err
	}
	if input.AccountID == uuid.Nil {
		return ErrAccountIDRequired
	}
	return nil
}

// AccountDeleteCommand hard deletes accounts that own no contacts.
type AccountDeleteCommand struct {
	repo     types.AccountRepository
	contacts types.ContactRepository
	logger   types.Logger
}

// AccountDeleteCommandConfig wires dependencies for the delete command.
type AccountDeleteCommandConfig struct {
	Repository types.AccountRepository
	Contacts   types.ContactRepository
	Logger     types.Logger
}

// NewAccountDeleteCommand constructs the admin delete handler.
func NewAccountDeleteCommand(cfg AccountDeleteCommandConfig) *AccountDeleteCommand {
	return &AccountDeleteCommand{
		repo:     cfg.Repository,
		contacts: cfg.Contacts,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AccountDeleteInput] = (*AccountDeleteCommand)(nil)

// Execute deletes the account unless it still owns contacts.
func (c *AccountDeleteCommand) Execute(ctx context.Context, input AccountDeleteInput) error {
	switch {
	case c.repo == nil:
		return types.ErrMissingAccountRepository
	case c.contacts == nil:
		return types.ErrMissingContactRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if input.AccountID == input.Actor.ID {
		return types.Conflict(msgCannotDeleteSelf)
	}

	if _, err := c.repo.GetAccount(ctx, input.AccountID); err != nil {
		return surfaceError(c.logger, "account lookup", err)
	}

	owned, err := c.contacts.CountByOwner(ctx, input.AccountID)
	if err != nil {
		return surfaceError(c.logger, "contact count", err)
	}
	if owned > 0 {
		return types.Conflict(msgAccountHasRecords)
	}

	if err := c.repo.DeleteAccount(ctx, input.AccountID); err != nil {
		return surfaceError(c.logger, "account delete", err)
	}
	c.logger.Info("go-contacts: account deleted",
		"account_id", input.AccountID,
		"actor_id", input.Actor.ID,
	)
	return nil
}
