package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
	"github.com/google/uuid"
)

// ContactDeleteInput identifies the contact to remove.
type ContactDeleteInput struct {
	Actor     types.ActorRef
	ContactID uuid.UUID
	OwnerID   uuid.UUID
}

// Type implements gocommand.Message.
func (ContactDeleteInput) Type() string {
	return "command.contact.delete"
}

// Validate implements gocommand.Message.
func (input ContactDeleteInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.ContactID == uuid.Nil:
		return ErrContactIDRequired
	default:
		return nil
	}
}

// ContactDeleteCommand hard deletes contacts inside the caller's scope.
type ContactDeleteCommand struct {
	repo   types.ContactRepository
	logger types.Logger
	guard  scope.Guard
}

// ContactDeleteCommandConfig wires dependencies for the delete command.
type ContactDeleteCommandConfig struct {
	Repository types.ContactRepository
	Logger     types.Logger
	ScopeGuard scope.Guard
}

// NewContactDeleteCommand constructs the delete handler.
func NewContactDeleteCommand(cfg ContactDeleteCommandConfig) *ContactDeleteCommand {
	return &ContactDeleteCommand{
		repo:   cfg.Repository,
		logger: safeLogger(cfg.Logger),
		guard:  safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[ContactDeleteInput] = (*ContactDeleteCommand)(nil)

// Execute removes the contact.
func (c *ContactDeleteCommand) Execute(ctx context.Context, input ContactDeleteInput) error {
	if c.repo == nil {
		return types.ErrMissingContactRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	ownerScope, err := c.guard.Resolve(ctx, types.ScopeRequest{
		Actor:    input.Actor,
		TargetID: input.OwnerID,
	})
	if err != nil {
		return err
	}

	if err := c.repo.DeleteContact(ctx, input.ContactID, ownerScope); err != nil {
		return surfaceError(c.logger, "contact delete", err)
	}
	c.logger.Info("go-contacts: contact deleted",
		"contact_id", input.ContactID,
		"actor_id", input.Actor.ID,
	)
	return nil
}
