package types

import (
	"context"

	"github.com/google/uuid"
)

// OwnerScope is the effective owner scope an operation is authorized against.
// All is only ever set for admin-global listings.
type OwnerScope struct {
	OwnerID uuid.UUID
	All     bool
}

// OwnerOnly returns a scope bound to a single owner.
func OwnerOnly(ownerID uuid.UUID) OwnerScope {
	return OwnerScope{OwnerID: ownerID}
}

// AllOwners returns the admin-global scope.
func AllOwners() OwnerScope {
	return OwnerScope{All: true}
}

// Includes reports whether a record owned by ownerID is visible in the scope.
func (s OwnerScope) Includes(ownerID uuid.UUID) bool {
	if s.All {
		return true
	}
	return s.OwnerID != uuid.Nil && s.OwnerID == ownerID
}

// ScopeRequest captures what the caller asked for: an optional target owner
// and whether the admin-global view was requested.
type ScopeRequest struct {
	Actor    ActorRef
	TargetID uuid.UUID
	Global   bool
}

// AccessPolicy resolves the effective owner scope for a caller.
type AccessPolicy interface {
	Resolve(ctx context.Context, req ScopeRequest) (OwnerScope, error)
}

// AccessPolicyFunc adapts bare functions to AccessPolicy.
type AccessPolicyFunc func(ctx context.Context, req ScopeRequest) (OwnerScope, error)

// Resolve implements AccessPolicy.
func (f AccessPolicyFunc) Resolve(ctx context.Context, req ScopeRequest) (OwnerScope, error) {
	return f(ctx, req)
}
