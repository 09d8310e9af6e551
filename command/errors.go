package command

import (
	"errors"

	"github.com/goliatone/go-contacts/pkg/types"
)

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = types.ErrActorRequired
	// ErrContactIDRequired indicates the contact identifier was omitted.
	ErrContactIDRequired = types.ErrContactIDRequired
	// ErrAccountIDRequired indicates the account identifier was omitted.
	ErrAccountIDRequired = types.ErrAccountIDRequired
	// ErrMissingTokenIssuer indicates registration has no token issuer wired.
	ErrMissingTokenIssuer = errors.New("go-contacts: missing token issuer")
)

const (
	msgSignupDisabled    = "registration is disabled"
	msgAdminOnly         = "admin role required"
	msgAccountHasRecords = "Cannot delete user with existing contacts. Please delete their contacts first."
	msgCannotDeleteSelf  = "admins cannot delete their own account"
)
