package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
	"github.com/google/uuid"
)

// ContactCreateInput captures the payload for contact creation. OwnerID is
// optional and names the account an admin creates the contact for.
type ContactCreateInput struct {
	Actor   types.ActorRef
	OwnerID uuid.UUID
	Fields  types.ContactFields
	Upload  *types.PhotoUpload
	Result  *types.Contact
}

// Type implements gocommand.Message.
func (ContactCreateInput) Type() string {
	return "command.contact.create"
}

// Validate implements gocommand.Message.
func (input ContactCreateInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return validateStruct(contactRules(normalizeContactFields(input.Fields)))
}

// ContactCreateCommand stores new contacts and notifies the owning account.
type ContactCreateCommand struct {
	repo     types.ContactRepository
	accounts types.AccountRepository
	photos   types.PhotoStore
	notifier types.Notifier
	clock    types.Clock
	logger   types.Logger
	guard    scope.Guard
}

// ContactCreateCommandConfig wires dependencies for the create command.
type ContactCreateCommandConfig struct {
	Repository types.ContactRepository
	Accounts   types.AccountRepository
	Photos     types.PhotoStore
	Notifier   types.Notifier
	Clock      types.Clock
	Logger     types.Logger
	ScopeGuard scope.Guard
}

// NewContactCreateCommand constructs the create handler.
func NewContactCreateCommand(cfg ContactCreateCommandConfig) *ContactCreateCommand {
	return &ContactCreateCommand{
		repo:     cfg.Repository,
		accounts: cfg.Accounts,
		photos:   cfg.Photos,
		notifier: cfg.Notifier,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[ContactCreateInput] = (*ContactCreateCommand)(nil)

// Execute resolves the owner, stores the optional photo and persists the
// contact. The owner is notified after the record is committed.
func (c *ContactCreateCommand) Execute(ctx context.Context, input ContactCreateInput) error {
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

	var owner *types.Account
	if c.accounts != nil {
		owner, err = c.accounts.GetAccount(ctx, ownerScope.OwnerID)
		if err != nil {
			return surfaceError(c.logger, "contact create owner lookup", err)
		}
	}

	fields := normalizeContactFields(input.Fields)
	if input.Upload != nil {
		ref, err := storePhoto(ctx, c.photos, ownerScope.OwnerID, *input.Upload)
		if err != nil {
			return surfaceError(c.logger, "contact photo store", err)
		}
		fields.Photo = ref
	}

	created, err := c.repo.CreateContact(ctx, ownerScope.OwnerID, fields)
	if err != nil {
		return surfaceError(c.logger, "contact create", err)
	}

	c.logger.Info("go-contacts: contact created",
		"contact_id", created.ID,
		"owner_id", created.OwnerID,
		"actor_id", input.Actor.ID,
	)

	if owner != nil {
		notifyContactCreated(ctx, c.notifier, c.logger, types.ContactCreatedEvent{
			Contact:    *created,
			OwnerName:  owner.Name,
			OwnerEmail: owner.Email,
			ActorID:    input.Actor.ID,
			OccurredAt: now(c.clock),
		})
	}

	if input.Result != nil {
		*input.Result = *created
	}
	return nil
}
