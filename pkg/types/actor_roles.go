package types

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// RoleUser is the default role granted to self-registered accounts.
	RoleUser = "user"
	// RoleAdmin may act on behalf of any account and list across owners.
	RoleAdmin = "admin"
)

// ActorRef identifies the authenticated caller of a command or query.
type ActorRef struct {
	ID   uuid.UUID
	Role string
}

// RoleName normalizes the actor role for comparisons.
func (a ActorRef) RoleName() string {
	return NormalizeRole(a.Role)
}

// IsAdmin reports whether the actor holds the admin role.
func (a ActorRef) IsAdmin() bool {
	return a.RoleName() == RoleAdmin
}

// NormalizeRole lower-cases and trims the role value.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// ValidRole reports whether the role is one of the supported roles.
func ValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}
