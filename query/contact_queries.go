package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
	"github.com/google/uuid"
)

// ContactListInput captures a contact listing request. OwnerID lets admins
// list another account; Global requests the admin all-accounts view.
type ContactListInput struct {
	Actor   types.ActorRef
	OwnerID uuid.UUID
	Global  bool
	Request types.PageRequest
}

// ContactListQuery returns one page of contacts for the resolved scope.
type ContactListQuery struct {
	repo   types.ContactRepository
	logger types.Logger
	guard  scope.Guard
}

// NewContactListQuery constructs the listing query.
func NewContactListQuery(repo types.ContactRepository, logger types.Logger, guard scope.Guard) *ContactListQuery {
	return &ContactListQuery{
		repo:   repo,
		logger: safeLogger(logger),
		guard:  safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[ContactListInput, types.ContactPage] = (*ContactListQuery)(nil)

// Query resolves the scope, builds the descriptor and wraps the fetched rows
// in the pagination envelope.
func (q *ContactListQuery) Query(ctx context.Context, input ContactListInput) (types.ContactPage, error) {
	if q.repo == nil {
		return types.ContactPage{}, types.ErrMissingContactRepository
	}
	ownerScope, err := q.guard.Resolve(ctx, types.ScopeRequest{
		Actor:    input.Actor,
		TargetID: input.OwnerID,
		Global:   input.Global,
	})
	if err != nil {
		return types.ContactPage{}, err
	}
	descriptor, err := BuildContactQuery(ownerScope, input.Request)
	if err != nil {
		return types.ContactPage{}, err
	}
	items, total, err := q.repo.FindContactPage(ctx, descriptor)
	if err != nil {
		return types.ContactPage{}, surfaceError(q.logger, "contact list", err)
	}
	if items == nil {
		items = []types.Contact{}
	}
	return types.ContactPage{
		Items:    items,
		PageInfo: types.NewPageInfo(total, descriptor.Page, descriptor.Limit),
	}, nil
}

// ContactDetailInput identifies a single contact.
type ContactDetailInput struct {
	Actor     types.ActorRef
	OwnerID   uuid.UUID
	ContactID uuid.UUID
}

// ContactDetailQuery loads one contact inside the caller's scope.
type ContactDetailQuery struct {
	repo   types.ContactRepository
	logger types.Logger
	guard  scope.Guard
}

// NewContactDetailQuery constructs the detail query.
func NewContactDetailQuery(repo types.ContactRepository, logger types.Logger, guard scope.Guard) *ContactDetailQuery {
	return &ContactDetailQuery{
		repo:   repo,
		logger: safeLogger(logger),
		guard:  safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[ContactDetailInput, *types.Contact] = (*ContactDetailQuery)(nil)

// Query returns the contact or a not found error when it is outside scope.
func (q *ContactDetailQuery) Query(ctx context.Context, input ContactDetailInput) (*types.Contact, error) {
	if q.repo == nil {
		return nil, types.ErrMissingContactRepository
	}
	if input.ContactID == uuid.Nil {
		return nil, types.ErrContactIDRequired
	}
	ownerScope, err := q.guard.Resolve(ctx, types.ScopeRequest{
		Actor:    input.Actor,
		TargetID: input.OwnerID,
	})
	if err != nil {
		return nil, err
	}
	contact, err := q.repo.FindContact(ctx, input.ContactID, ownerScope)
	if err != nil {
		return nil, surfaceError(q.logger, "contact detail", err)
	}
	return contact, nil
}
