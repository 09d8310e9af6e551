// Package contacts is a multi-user contact book: owner-scoped contact
// records, an owner/admin access policy, listing with search, sort and
// pagination, and account management around it.
//
// Host applications construct a Service with their repositories and
// collaborators and drive it through the command and query handlers, or
// mount the gin transport in transport/httpapi.
package contacts

import "github.com/goliatone/go-contacts/service"

type (
	// Service is the go-contacts entry point.
	Service = service.Service
	// Config lists the dependencies a Service needs.
	Config = service.Config
	// Commands groups the write handlers.
	Commands = service.Commands
	// Queries groups the read handlers.
	Queries = service.Queries
)

// New constructs a Service.
func New(cfg Config) *Service {
	return service.New(cfg)
}
