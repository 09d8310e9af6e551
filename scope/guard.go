package scope

import (
	"context"

	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

const (
	msgActorMissing = "authenticated caller required"
	msgActOnBehalf  = "only admins may act on behalf of another account"
	msgGlobalDenied = "only admins may access the all-accounts view"
)

// Guard resolves the effective owner scope for every command and query.
type Guard = types.AccessPolicy

type guard struct{}

// NewGuard returns the default owner/admin access policy.
func NewGuard() Guard {
	return guard{}
}

// Ensure returns a non-nil guard so command/query constructors can accept nil
// guards when tests instantiate them directly.
func Ensure(g Guard) Guard {
	if g == nil {
		return guard{}
	}
	return g
}

var _ types.AccessPolicy = guard{}

// Resolve implements types.AccessPolicy.
//
// Without a target the caller's own id is used. A target that differs from
// the caller requires the admin role. The global view requires the admin role
// and is only granted when no target narrows it.
func (guard) Resolve(_ context.Context, req types.ScopeRequest) (types.OwnerScope, error) {
	actor := req.Actor
	if actor.ID == uuid.Nil {
		return types.OwnerScope{}, types.Unauthorized(msgActorMissing)
	}

	if req.TargetID != uuid.Nil && req.TargetID != actor.ID {
		if !actor.IsAdmin() {
			return types.OwnerScope{}, types.Forbidden(msgActOnBehalf)
		}
		return types.OwnerOnly(req.TargetID), nil
	}

	if req.Global {
		if !actor.IsAdmin() {
			return types.OwnerScope{}, types.Forbidden(msgGlobalDenied)
		}
		if req.TargetID == uuid.Nil {
			return types.AllOwners(), nil
		}
	}

	return types.OwnerOnly(actor.ID), nil
}
