package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
	"github.com/google/uuid"
)

// ContactUpdateInput captures a partial contact update. Upload replaces the
// photo and takes precedence over Patch.Photo; an empty Patch.Photo clears it.
type ContactUpdateInput struct {
	Actor     types.ActorRef
	ContactID uuid.UUID
	OwnerID   uuid.UUID
	Patch     types.ContactPatch
	Upload    *types.PhotoUpload
	Result    *types.Contact
}

// Type implements gocommand.Message.
func (ContactUpdateInput) Type() string {
	return "command.contact.update"
}

// Validate implements gocommand.Message.
func (input ContactUpdateInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.ContactID == uuid.Nil:
		return ErrContactIDRequired
	default:
		return validateStruct(patchRules(normalizeContactPatch(input.Patch)))
	}
}

// ContactUpdateCommand applies partial updates inside the caller's scope.
type ContactUpdateCommand struct {
	repo   types.ContactRepository
	photos types.PhotoStore
	logger types.Logger
	guard  scope.Guard
}

// ContactUpdateCommandConfig wires dependencies for the update command.
type ContactUpdateCommandConfig struct {
	Repository types.ContactRepository
	Photos     types.PhotoStore
	Logger     types.Logger
	ScopeGuard scope.Guard
}

// NewContactUpdateCommand constructs the update handler.
func NewContactUpdateCommand(cfg ContactUpdateCommandConfig) *ContactUpdateCommand {
	return &ContactUpdateCommand{
		repo:   cfg.Repository,
		photos: cfg.Photos,
		logger: safeLogger(cfg.Logger),
		guard:  safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[ContactUpdateInput] = (*ContactUpdateCommand)(nil)

// Execute patches the contact. Contacts outside the resolved scope are
// reported as not found.
func (c *ContactUpdateCommand) Execute(ctx context.Context, input ContactUpdateInput) error {
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

	patch := normalizeContactPatch(input.Patch)
	if input.Upload != nil {
		if _, err := c.repo.FindContact(ctx, input.ContactID, ownerScope); err != nil {
			return surfaceError(c.logger, "contact lookup", err)
		}
		ref, err := storePhoto(ctx, c.photos, ownerScope.OwnerID, *input.Upload)
		if err != nil {
			return surfaceError(c.logger, "contact photo store", err)
		}
		patch.Photo = strPtr(ref)
	}

	updated, err := c.repo.UpdateContact(ctx, input.ContactID, ownerScope, patch)
	if err != nil {
		return surfaceError(c.logger, "contact update", err)
	}

	if input.Result != nil {
		*input.Result = *updated
	}
	return nil
}
