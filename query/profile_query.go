package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// ProfileQueryInput identifies the caller whose profile is returned.
type ProfileQueryInput struct {
	Actor types.ActorRef
}

// ProfileQuery fetches the account behind the authenticated caller.
type ProfileQuery struct {
	repo   types.AccountRepository
	logger types.Logger
}

// NewProfileQuery constructs the profile query helper.
func NewProfileQuery(repo types.AccountRepository, logger types.Logger) *ProfileQuery {
	return &ProfileQuery{repo: repo, logger: safeLogger(logger)}
}

var _ gocommand.Querier[ProfileQueryInput, *types.Account] = (*ProfileQuery)(nil)

// Query returns the caller's account.
func (q *ProfileQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.Account, error) {
	if q.repo == nil {
		return nil, types.ErrMissingAccountRepository
	}
	if input.Actor.ID == uuid.Nil {
		return nil, types.Unauthorized("authenticated caller required")
	}
	account, err := q.repo.GetAccount(ctx, input.Actor.ID)
	if err != nil {
		return nil, surfaceError(q.logger, "profile", err)
	}
	return account, nil
}
