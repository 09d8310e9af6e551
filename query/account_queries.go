package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

const (
	msgAdminOnly       = "admin role required"
	msgAccountNotFound = "user not found"
)

// AccountListInput captures an admin account listing request.
type AccountListInput struct {
	Actor   types.ActorRef
	Request types.PageRequest
}

// AccountListQuery returns a page of accounts for admin panels.
type AccountListQuery struct {
	repo   types.AccountRepository
	logger types.Logger
}

// NewAccountListQuery constructs the account listing query.
func NewAccountListQuery(repo types.AccountRepository, logger types.Logger) *AccountListQuery {
	return &AccountListQuery{repo: repo, logger: safeLogger(logger)}
}

var _ gocommand.Querier[AccountListInput, types.AccountPage] = (*AccountListQuery)(nil)

// Query lists accounts. Only admins may call it.
func (q *AccountListQuery) Query(ctx context.Context, input AccountListInput) (types.AccountPage, error) {
	if q.repo == nil {
		return types.AccountPage{}, types.ErrMissingAccountRepository
	}
	if err := requireAdmin(input.Actor); err != nil {
		return types.AccountPage{}, err
	}
	descriptor, err := BuildAccountQuery(input.Request)
	if err != nil {
		return types.AccountPage{}, err
	}
	items, total, err := q.repo.FindAccountPage(ctx, descriptor)
	if err != nil {
		return types.AccountPage{}, surfaceError(q.logger, "account list", err)
	}
	if items == nil {
		items = []types.Account{}
	}
	return types.AccountPage{
		Items:    items,
		PageInfo: types.NewPageInfo(total, descriptor.Page, descriptor.Limit),
	}, nil
}

// AccountDetailInput identifies an account.
type AccountDetailInput struct {
	Actor     types.ActorRef
	AccountID uuid.UUID
}

// AccountDetailQuery loads an account. Admins may read any account, users
// only their own; other accounts are reported as not found.
type AccountDetailQuery struct {
	repo   types.AccountRepository
	logger types.Logger
}

// NewAccountDetailQuery constructs the account detail query.
func NewAccountDetailQuery(repo types.AccountRepository, logger types.Logger) *AccountDetailQuery {
	return &AccountDetailQuery{repo: repo, logger: safeLogger(logger)}
}

var _ gocommand.Querier[AccountDetailInput, *types.Account] = (*AccountDetailQuery)(nil)

// Query implements gocommand.Querier.
func (q *AccountDetailQuery) Query(ctx context.Context, input AccountDetailInput) (*types.Account, error) {
	if q.repo == nil {
		return nil, types.ErrMissingAccountRepository
	}
	if input.Actor.ID == uuid.Nil {
		return nil, types.Unauthorized("authenticated caller required")
	}
	if input.AccountID == uuid.Nil {
		return nil, types.ErrAccountIDRequired
	}
	if input.AccountID != input.Actor.ID && !input.Actor.IsAdmin() {
		return nil, types.NotFound(msgAccountNotFound)
	}
	account, err := q.repo.GetAccount(ctx, input.AccountID)
	if err != nil {
		return nil, surfaceError(q.logger, "account detail", err)
	}
	return account, nil
}

func requireAdmin(actor types.ActorRef) error {
	if actor.ID == uuid.Nil {
		return types.Unauthorized("authenticated caller required")
	}
	if !actor.IsAdmin() {
		return types.Forbidden(msgAdminOnly)
	}
	return nil
}
